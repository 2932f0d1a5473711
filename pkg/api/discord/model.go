package discord

import "github.com/Lyttaaa/Maitre-des-qu-tes/pkg/api"

const (
	componentActionRow = 1
	componentButton    = 2
)

type ButtonStyle int

const (
	ButtonPrimary   ButtonStyle = 1
	ButtonSecondary ButtonStyle = 2
	ButtonSuccess   ButtonStyle = 3
)

type Button struct {
	Label    string
	CustomID string
	Style    ButtonStyle
}

type Message struct {
	Content string

	// Buttons are laid out on a single row.
	Buttons []Button
}

func (m Message) ToJSON() api.JSON {
	body := api.JSON{"content": m.Content}
	if len(m.Buttons) == 0 {
		return body
	}

	buttons := []api.JSON{}
	for _, b := range m.Buttons {
		style := b.Style
		if style == 0 {
			style = ButtonPrimary
		}

		buttons = append(buttons, api.JSON{
			"type":      componentButton,
			"style":     style,
			"label":     b.Label,
			"custom_id": b.CustomID,
		})
	}

	body["components"] = []api.JSON{{"type": componentActionRow, "components": buttons}}
	return body
}
