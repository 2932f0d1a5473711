package discord

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/Lyttaaa/Maitre-des-qu-tes/config"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/api"
	"github.com/puzpuzpuz/xsync"
)

const apiURL = "https://discord.com/api/v10"
const userAgent = "DiscordBot (https://github.com/Lyttaaa/Maitre-des-qu-tes, 1.0)"

const (
	createDMResource      = "create_dm"
	createMessageResource = "create_message"
)

type Endpoint struct {
	BotToken string
	BotID    string

	apiGenerator      api.Generator
	rateLimitResource *xsync.MapOf[string, *xsync.MapOf[string, time.Time]]

	// dmChannels maps a user id to the id of its direct message channel.
	dmChannels *xsync.MapOf[string, string]
}

func New(cfg config.DiscordConfigs) *Endpoint {
	return &Endpoint{
		BotToken:          cfg.BotToken,
		BotID:             cfg.BotID,
		apiGenerator:      api.NewGenerator(apiURL),
		rateLimitResource: xsync.NewMapOf[*xsync.MapOf[string, time.Time]](),
		dmChannels:        xsync.NewMapOf[string](),
	}
}

func (e *Endpoint) SendDirectMessage(ctx context.Context, userID, content string) error {
	channelID, err := e.directMessageChannel(ctx, userID)
	if err != nil {
		return err
	}

	return e.SendChannelMessage(ctx, channelID, Message{Content: content})
}

func (e *Endpoint) SendChannelMessage(ctx context.Context, channelID string, msg Message) error {
	if err := e.checkLimitingResource(createMessageResource, channelID); err != nil {
		return err
	}

	resp, err := e.apiGenerator.New("/channels/%s/messages", channelID).
		Header("User-Agent", userAgent).
		Body(msg.ToJSON()).
		POST(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return err
	}

	if err := e.checkTooManyRequest(resp, createMessageResource, channelID); err != nil {
		return err
	}

	return checkError(resp)
}

func (e *Endpoint) directMessageChannel(ctx context.Context, userID string) (string, error) {
	if channelID, ok := e.dmChannels.Load(userID); ok {
		return channelID, nil
	}

	if err := e.checkLimitingResource(createDMResource, e.BotID); err != nil {
		return "", err
	}

	resp, err := e.apiGenerator.New("/users/@me/channels").
		Header("User-Agent", userAgent).
		Body(api.JSON{"recipient_id": userID}).
		POST(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return "", err
	}

	if err := e.checkTooManyRequest(resp, createDMResource, e.BotID); err != nil {
		return "", err
	}

	if err := checkError(resp); err != nil {
		return "", err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return "", errors.New("invalid response")
	}

	channelID, err := body.GetString("id")
	if err != nil {
		return "", err
	}

	e.dmChannels.Store(userID, channelID)
	return channelID, nil
}

func checkError(resp *api.Response) error {
	if resp.Code < http.StatusBadRequest {
		return nil
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return fmt.Errorf("discord responded %d", resp.Code)
	}

	// If response has the field of code, an error is returned.
	code, err := body.GetInt("code")
	if err != nil {
		return fmt.Errorf("discord responded %d", resp.Code)
	}

	if code == cannotSendMessagesToUserCode {
		return ErrCannotSendDM
	}

	message, _ := body.GetString("message")
	return fmt.Errorf("discord error %d: %s", code, message)
}

func (e *Endpoint) checkLimitingResource(resource, identifier string) error {
	if limit, ok := e.rateLimitResource.Load(resource); ok {
		if resetAt, ok := limit.Load(identifier); ok {
			if resetAt.After(time.Now()) {
				return wrapRateLimit(resetAt.Unix())
			}

			// If the rate limit is reset, delete the limit for this resource.
			limit.Delete(identifier)
		}
	}

	return nil
}

func (e *Endpoint) checkTooManyRequest(resp *api.Response, resource, identifier string) error {
	if resp.Code == http.StatusTooManyRequests {
		// Discord sends the reset time as epoch seconds with a fraction.
		resetAt, err := strconv.ParseFloat(resp.Header.Get("X-Ratelimit-Reset"), 64)
		if err != nil {
			return err
		}

		reset := int64(math.Ceil(resetAt))
		resourceLimiter, _ := e.rateLimitResource.LoadOrStore(resource, xsync.NewMapOf[time.Time]())
		resourceLimiter.Store(identifier, time.Unix(reset, 0))
		return wrapRateLimit(reset)
	}

	return nil
}
