package types

// ChannelID identifies a chat channel on the messaging platform.
type ChannelID string

func (x ChannelID) String() string { return string(x) }

type SlackToken string

func (x SlackToken) String() string { return "***********" }

type DiscordToken string

func (x DiscordToken) String() string { return "***********" }
