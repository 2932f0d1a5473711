package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/catalog"
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/entity"
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/model"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xcontext"
)

const dmFallbackSuffix = "(MP non reçu)"

// AcceptMessage returns the text telling the participant the outcome of an
// accept request.
func AcceptMessage(result *model.AcceptResult) string {
	quest := result.Quest
	switch result.Status {
	case model.AcceptStatusAlreadyAccepted:
		return fmt.Sprintf("⚠️ Tu as déjà accepté la quête **%s** (%s).", quest.Name, quest.ID)

	case model.AcceptStatusAlreadyCompletedNonRepeatable:
		return fmt.Sprintf("✅ Tu as déjà terminé la quête **%s** (%s), elle ne peut pas être refaite.",
			quest.Name, quest.ID)
	}

	lines := []string{fmt.Sprintf("📜 Tu as accepté la quête **%s** (%s) !", quest.Name, quest.ID)}
	ins := result.Instructions
	switch ins.Kind {
	case model.InstructionRiddle:
		lines = append(lines, fmt.Sprintf("🧩 Énigme : %s", ins.Riddle))
		lines = append(lines, "Réponds-moi en message privé.")

	case model.InstructionSteps:
		if ins.Summary != "" {
			lines = append(lines, ins.Summary)
		}
		lines = append(lines, fmt.Sprintf("👉 Étape 1 : %s", ins.StepHint))
		if len(ins.Emojis) > 0 {
			lines = append(lines, fmt.Sprintf("Réagis avec %s pour valider.", strings.Join(ins.Emojis, " ")))
		}

	default:
		if ins.Summary != "" {
			lines = append(lines, ins.Summary)
		}
		if ins.Detail != "" {
			lines = append(lines, fmt.Sprintf("🎯 Objectif : %s", ins.Detail))
		}
		if len(ins.Emojis) > 0 {
			lines = append(lines, fmt.Sprintf("Réagis avec %s pour valider.", strings.Join(ins.Emojis, " ")))
		}
	}

	return strings.Join(lines, "\n")
}

// CompletionMessage returns the text of a completion outcome. NoMatch has no
// message.
func CompletionMessage(ctx context.Context, result *model.CompletionResult) (string, bool) {
	switch result.Status {
	case model.CompletionStatusCompleted:
		return fmt.Sprintf("🎉 Tu as terminé la quête **%s** et gagné **%d %s** ! Solde : %d %s.",
			result.Quest.Name, result.Reward, currency(ctx), result.Balance, currency(ctx)), true

	case model.CompletionStatusStepAdvanced:
		return fmt.Sprintf("✨ Étape validée pour **%s** ! 👉 Étape %d : %s",
			result.Quest.Name, result.Step, result.NextStepHint), true

	default:
		return "", false
	}
}

func StatusMessage(report *model.StatusReport) string {
	if report.IsEmpty() {
		return "📭 Tu n'as encore accepté aucune quête."
	}

	lines := []string{}
	for _, c := range report.Categories {
		if len(c.InProgress) == 0 && len(c.Completed) == 0 {
			continue
		}

		lines = append(lines, fmt.Sprintf("**%s**", categoryTitle(c.Category)))
		for _, q := range c.InProgress {
			lines = append(lines, fmt.Sprintf("⏳ %s", q))
		}
		for _, q := range c.Completed {
			lines = append(lines, fmt.Sprintf("✅ %s", q))
		}
	}

	return strings.Join(lines, "\n")
}

func BalanceMessage(ctx context.Context, balance uint64) string {
	return fmt.Sprintf("💰 Tu as **%d %s**.", balance, currency(ctx))
}

// ListingMessage is the public post offering a quest to everyone.
func ListingMessage(ctx context.Context, quest catalog.QuestDefinition) string {
	lines := []string{
		fmt.Sprintf("📢 **%s** · %s (%s)", categoryTitle(quest.Category), quest.Name, quest.ID),
	}
	if quest.Presentation.Summary != "" {
		lines = append(lines, quest.Presentation.Summary)
	}
	lines = append(lines, fmt.Sprintf("Récompense : %d %s", quest.Reward, currency(ctx)))

	return strings.Join(lines, "\n")
}

func QuestNotFoundMessage(questID string) string {
	return fmt.Sprintf("❓ La quête %s n'existe pas.", questID)
}

func fallbackMessage(userID, message string) string {
	return fmt.Sprintf("<@%s> %s %s", userID, message, dmFallbackSuffix)
}

func categoryTitle(category entity.Category) string {
	switch category {
	case entity.CategoryDaily:
		return "Quêtes quotidiennes"
	case entity.CategoryInteraction:
		return "Quêtes d'interaction"
	case entity.CategoryResearch:
		return "Quêtes de recherche"
	case entity.CategoryRiddle:
		return "Énigmes"
	default:
		return category.String()
	}
}

func currency(ctx context.Context) string {
	if name := xcontext.Configs(ctx).Currency.Name; name != "" {
		return name
	}

	return "Lumes"
}
