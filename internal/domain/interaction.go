package domain

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/model"
	discordsig "github.com/Lyttaaa/Maitre-des-qu-tes/pkg/discord"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/errorx"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xcontext"
)

const (
	acceptButtonPrefix = "accept:"

	statusCommand  = "quests"
	balanceCommand = "lumes"
)

const internalErrorMessage = "❌ Une erreur est survenue, réessaie plus tard."

// AcceptButtonID is the custom id of the accept button of a quest listing.
func AcceptButtonID(questID string) string {
	return acceptButtonPrefix + questID
}

// InteractionHandler serves the Discord interactions webhook: accept buttons
// of quest listings and the slash commands.
type InteractionHandler struct {
	publicKey            ed25519.PublicKey
	questLifecycleDomain QuestLifecycleDomain
}

func NewInteractionHandler(publicKey ed25519.PublicKey, questLifecycleDomain QuestLifecycleDomain) *InteractionHandler {
	return &InteractionHandler{
		publicKey:            publicKey,
		questLifecycleDomain: questLifecycleDomain,
	}
}

// ServeHTTP answers signed Discord interactions: PING, the accept button and
// the quests and lumes commands. Replies are ephemeral.
func (h *InteractionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := discordsig.Verify(r, h.publicKey)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid interaction signature: %v", err)
		http.Error(w, "invalid request signature", http.StatusUnauthorized)
		return
	}

	var interaction model.Interaction
	if err := json.Unmarshal(body, &interaction); err != nil {
		http.Error(w, "invalid interaction", http.StatusBadRequest)
		return
	}

	resp := h.handle(ctx, interaction)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write interaction response: %v", err)
	}
}

func (h *InteractionHandler) handle(ctx context.Context, interaction model.Interaction) model.InteractionResponse {
	if interaction.Type == model.InteractionPing {
		return model.InteractionResponse{Type: model.InteractionResponsePong}
	}

	user, displayName := interaction.Invoker()
	if user.ID == "" {
		return ephemeral(internalErrorMessage)
	}

	switch interaction.Type {
	case model.InteractionMessageComponent:
		questID, ok := strings.CutPrefix(interaction.Data.CustomID, acceptButtonPrefix)
		if !ok {
			xcontext.Logger(ctx).Warnf("Unknown component %s", interaction.Data.CustomID)
			return ephemeral(internalErrorMessage)
		}

		result, err := h.questLifecycleDomain.Accept(ctx, &model.AcceptRequest{
			UserID:      user.ID,
			DisplayName: displayName,
			QuestID:     questID,
		})
		if err != nil {
			if errorx.Is(err, errorx.QuestNotFound) {
				return ephemeral(QuestNotFoundMessage(questID))
			}

			return ephemeral(internalErrorMessage)
		}

		return ephemeral(AcceptMessage(result))

	case model.InteractionApplicationCommand:
		switch interaction.Data.Name {
		case statusCommand:
			report, err := h.questLifecycleDomain.CurrentStatus(ctx, user.ID)
			if err != nil {
				return ephemeral(internalErrorMessage)
			}

			return ephemeral(StatusMessage(report))

		case balanceCommand:
			balance, err := h.questLifecycleDomain.WalletBalance(ctx, user.ID)
			if err != nil {
				return ephemeral(internalErrorMessage)
			}

			return ephemeral(BalanceMessage(ctx, balance))
		}

		xcontext.Logger(ctx).Warnf("Unknown command %s", interaction.Data.Name)
		return ephemeral(internalErrorMessage)

	default:
		xcontext.Logger(ctx).Warnf("Unsupported interaction type %d", interaction.Type)
		return ephemeral(internalErrorMessage)
	}
}

func ephemeral(content string) model.InteractionResponse {
	return model.InteractionResponse{
		Type: model.InteractionResponseChannelMessage,
		Data: &model.InteractionResponseData{
			Content: content,
			Flags:   model.MessageFlagEphemeral,
		},
	}
}
