package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	Chat         Chat
	GeminiApiKey string
}

type Server struct {
	Port string
}
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Chat holds the knobs of the turn engine and evaluation pipeline.
type Chat struct {
	Model           string
	EvalModel       string
	MaxTurns        int
	HistoryWindow   int
	ReplyLanguage   string
	EvalTimeoutSecs int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("CHAT_MODEL", "gemini-1.5-flash")
	viper.SetDefault("EVAL_MODEL", "gemini-1.5-flash")
	viper.SetDefault("CHAT_MAX_TURNS", 3)
	viper.SetDefault("CHAT_HISTORY_WINDOW", 6)
	viper.SetDefault("CHAT_REPLY_LANGUAGE", "English")
	viper.SetDefault("EVAL_TIMEOUT_SECONDS", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")

	config.Chat.Model = viper.GetString("CHAT_MODEL")
	config.Chat.EvalModel = viper.GetString("EVAL_MODEL")
	config.Chat.MaxTurns = viper.GetInt("CHAT_MAX_TURNS")
	config.Chat.HistoryWindow = viper.GetInt("CHAT_HISTORY_WINDOW")
	config.Chat.ReplyLanguage = viper.GetString("CHAT_REPLY_LANGUAGE")
	config.Chat.EvalTimeoutSecs = viper.GetInt("EVAL_TIMEOUT_SECONDS")

	log.Info().Str("port", config.Server.Port).Str("chat_model", config.Chat.Model).Msg("Config loaded")
	return &config, nil
}
