package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`

	// NodeID must be unique per running process, it seeds ledger ids.
	NodeID int64 `toml:"node_id"`

	Database    DatabaseConfigs `toml:"database"`
	Redis       RedisConfigs    `toml:"redis"`
	Kafka       KafkaConfigs    `toml:"kafka"`
	Discord     DiscordConfigs  `toml:"discord"`
	Catalog     CatalogConfigs  `toml:"catalog"`
	Interaction ServerConfigs   `toml:"interaction"`
	Schedule    ScheduleConfigs `toml:"schedule"`
	Currency    CurrencyConfigs `toml:"currency"`
}

type DatabaseConfigs struct {
	// Driver is either mysql or sqlite.
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type KafkaConfigs struct {
	Addrs         []string `toml:"addrs"`
	GroupID       string   `toml:"group_id"`
	AcceptTopic   string   `toml:"accept_topic"`
	ReactionTopic string   `toml:"reaction_topic"`
	MessageTopic  string   `toml:"message_topic"`
}

func (c KafkaConfigs) Topics() []string {
	return []string{c.AcceptTopic, c.ReactionTopic, c.MessageTopic}
}

type DiscordConfigs struct {
	BotToken       string `toml:"bot_token"`
	BotID          string `toml:"bot_id"`
	PublicKey      string `toml:"public_key"`
	QuestChannelID string `toml:"quest_channel_id"`
}

type CatalogConfigs struct {
	// Source is either file or s3.
	Source string `toml:"source"`
	Path   string `toml:"path"`

	Bucket      string `toml:"bucket"`
	Key         string `toml:"key"`
	Region      string `toml:"region"`
	Endpoint    string `toml:"endpoint"`
	AccessKey   string `toml:"access_key"`
	SecretKey   string `toml:"secret_key"`
	SSLDisabled bool   `toml:"ssl_disabled"`
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
}

type ScheduleConfigs struct {
	// DailyAt and WeeklyAt are wall clock times formatted as 15:04.
	DailyAt          string       `toml:"daily_at"`
	WeeklyDay        time.Weekday `toml:"weekly_day"`
	WeeklyAt         string       `toml:"weekly_at"`
	DailyCategories  []string     `toml:"daily_categories"`
	WeeklyCategories []string     `toml:"weekly_categories"`
}

type CurrencyConfigs struct {
	Name string `toml:"name"`
}

func Default() Configs {
	return Configs{
		Env:      "local",
		LogLevel: "info",
		NodeID:   1,
		Database: DatabaseConfigs{
			Driver: "sqlite",
			DSN:    "quests.db",
		},
		Redis: RedisConfigs{Addr: "localhost:6379"},
		Kafka: KafkaConfigs{
			Addrs:         []string{"localhost:9092"},
			GroupID:       "quest-worker",
			AcceptTopic:   "quest.accept",
			ReactionTopic: "quest.reaction",
			MessageTopic:  "quest.message",
		},
		Catalog: CatalogConfigs{
			Source: "file",
			Path:   "quests.yaml",
		},
		Interaction: ServerConfigs{Port: "8080"},
		Schedule: ScheduleConfigs{
			DailyAt:          "09:00",
			WeeklyDay:        time.Monday,
			WeeklyAt:         "10:00",
			DailyCategories:  []string{"daily"},
			WeeklyCategories: []string{"interaction", "research", "riddle"},
		},
		Currency: CurrencyConfigs{Name: "Lumes"},
	}
}

// Load reads the TOML file at path on top of the default configs, then
// applies environment overrides. A missing file is not an error.
func Load(path string) (Configs, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Configs{}, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Configs) {
	setString(&cfg.Discord.BotToken, "DISCORD_TOKEN")
	setString(&cfg.Discord.BotID, "DISCORD_BOT_ID")
	setString(&cfg.Discord.PublicKey, "DISCORD_PUBLIC_KEY")
	setString(&cfg.Discord.QuestChannelID, "DISCORD_QUEST_CHANNEL_ID")
	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Database.DSN, "DATABASE_DSN")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Catalog.Path, "CATALOG_PATH")
	setString(&cfg.LogLevel, "LOG_LEVEL")

	if addrs := os.Getenv("KAFKA_ADDRS"); addrs != "" {
		cfg.Kafka.Addrs = strings.Split(addrs, ",")
	}
}

func setString(field *string, env string) {
	if v := os.Getenv(env); v != "" {
		*field = v
	}
}
