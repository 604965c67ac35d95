package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultAssistantModel             = "gemini-1.5-flash"
	DefaultAssistantSystemInstruction = "You are an expert administrative assistant for a school. " +
		"Provide concise, helpful, and professionally toned responses suitable for an educational environment."
)

type (
	ServerConfig struct {
		Host            string
		DebugHost       string
		ShutdownTimeout time.Duration
		ReadTimeout     time.Duration
		WriteTimeout    time.Duration
		DisableReqLogs  bool
	}

	// LogConfig configures the optional rotating log file. File logging is off when File is empty.
	LogConfig struct {
		File       string
		MaxSize    int // megabytes
		MaxBackups int
		MaxAge     int // days
		Compress   bool
	}

	AssistantConfig struct {
		APIKey            string
		Model             string
		SystemInstruction string
		Timeout           time.Duration
	}

	Config struct {
		Debug    bool
		TestMode bool
		AppName  string
		Env      string
		Build    string
		WorkDir  string

		Server    ServerConfig
		Log       LogConfig
		Assistant AssistantConfig

		AvatarBaseURL    string
		Seed             bool
		DefaultFromEmail mail.Address
		RollbarToken     string
		SendgridApiKey   string
	}
)

// NewConfig reads the configuration for the current ENV (DEV by default) from the environment,
// after loading config/.env.<env> when it exists.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Shule")
	v.SetDefault("build", "dev")
	v.SetDefault("server.host", ":8080")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.readTimeout", 5*time.Second)
	v.SetDefault("server.writeTimeout", 90*time.Second)
	v.SetDefault("server.disableReqLogs", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.maxSize", 100)
	v.SetDefault("log.maxBackups", 3)
	v.SetDefault("log.maxAge", 28)
	v.SetDefault("log.compress", true)
	v.SetDefault("avatarBaseURL", "https://i.pravatar.cc/150")
	v.SetDefault("seed", true)
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("assistant.apiKey", "")
	v.SetDefault("assistant.model", DefaultAssistantModel)
	v.SetDefault("assistant.systemInstruction", DefaultAssistantSystemInstruction)
	v.SetDefault("assistant.timeout", 60*time.Second)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()
	// the assistant key keeps its historical unprefixed name
	_ = v.BindEnv("assistant.apiKey", env+"_ASSISTANT_APIKEY", "API_KEY")

	conf := &Config{
		Debug:    v.GetBool("debug"),
		TestMode: v.GetBool("testMode"),
		AppName:  v.GetString("appName"),
		Env:      env,
		Build:    v.GetString("build"),
		WorkDir:  wd,
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			DebugHost:       v.GetString("server.debugHost"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
			ReadTimeout:     v.GetDuration("server.readTimeout"),
			WriteTimeout:    v.GetDuration("server.writeTimeout"),
			DisableReqLogs:  v.GetBool("server.disableReqLogs"),
		},
		Log: LogConfig{
			File:       v.GetString("log.file"),
			MaxSize:    v.GetInt("log.maxSize"),
			MaxBackups: v.GetInt("log.maxBackups"),
			MaxAge:     v.GetInt("log.maxAge"),
			Compress:   v.GetBool("log.compress"),
		},
		Assistant: AssistantConfig{
			APIKey:            v.GetString("assistant.apiKey"),
			Model:             v.GetString("assistant.model"),
			SystemInstruction: v.GetString("assistant.systemInstruction"),
			Timeout:           v.GetDuration("assistant.timeout"),
		},
		AvatarBaseURL:  strings.TrimRight(v.GetString("avatarBaseURL"), "/?"),
		Seed:           v.GetBool("seed"),
		RollbarToken:   v.GetString("rollbarToken"),
		SendgridApiKey: v.GetString("sendgridApiKey"),
	}

	from, err := mail.ParseAddress(v.GetString("defaultFromEmail"))
	if err != nil {
		log.Fatalf("config.defaultFromEmail: %v", err)
	}
	conf.DefaultFromEmail = *from
	if from.Name == "" {
		conf.DefaultFromEmail.Name = conf.AppName
	}
	return conf
}
