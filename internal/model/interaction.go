package model

type InteractionType int

const (
	InteractionPing               InteractionType = 1
	InteractionApplicationCommand InteractionType = 2
	InteractionMessageComponent   InteractionType = 3
)

type InteractionResponseType int

const (
	InteractionResponsePong           InteractionResponseType = 1
	InteractionResponseChannelMessage InteractionResponseType = 4
)

const MessageFlagEphemeral = 1 << 6

type Interaction struct {
	ID        string             `json:"id"`
	Type      InteractionType    `json:"type"`
	Data      InteractionData    `json:"data"`
	GuildID   string             `json:"guild_id"`
	ChannelID string             `json:"channel_id"`
	Member    *InteractionMember `json:"member"`
	User      *InteractionUser   `json:"user"`
	Token     string             `json:"token"`
}

type InteractionData struct {
	Name          string `json:"name"`
	CustomID      string `json:"custom_id"`
	ComponentType int    `json:"component_type"`
}

type InteractionMember struct {
	User InteractionUser `json:"user"`
	Nick string          `json:"nick"`
}

type InteractionUser struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
}

// Invoker returns the user behind the interaction. Guild interactions carry a
// member, direct message interactions carry a user.
func (i Interaction) Invoker() (InteractionUser, string) {
	if i.Member != nil {
		name := i.Member.Nick
		if name == "" {
			name = i.Member.User.displayName()
		}
		return i.Member.User, name
	}

	if i.User != nil {
		return *i.User, i.User.displayName()
	}

	return InteractionUser{}, ""
}

func (u InteractionUser) displayName() string {
	if u.GlobalName != "" {
		return u.GlobalName
	}

	return u.Username
}

type InteractionResponse struct {
	Type InteractionResponseType  `json:"type"`
	Data *InteractionResponseData `json:"data,omitempty"`
}

type InteractionResponseData struct {
	Content string `json:"content"`
	Flags   int    `json:"flags,omitempty"`
}
