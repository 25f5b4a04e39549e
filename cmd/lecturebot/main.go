package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"lecturebot/core/cmd"
	coreconfig "lecturebot/core/config"
	"lecturebot/internal/bot"
)

type carrier struct {
	cfg *coreconfig.Config
}

func (c carrier) CoreConfig() *coreconfig.Config { return c.cfg }

func main() {
	// A missing .env is fine; environment variables still apply.
	_ = godotenv.Load()

	err := cmd.Run(cmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (cmd.ConfigCarrier, error) {
			cfg, err := coreconfig.Load(path)
			if err != nil {
				return nil, err
			}
			return carrier{cfg: cfg}, nil
		},
		Bootstrap: func(cc cmd.ConfigCarrier) (cmd.TelegramApp, error) {
			environment := os.Getenv("ENVIRONMENT")
			if environment == "" {
				environment = "development"
			}
			return bot.Build(cc.CoreConfig(), environment)
		},
	})
	if err != nil {
		log.Fatalf("lecturebot: %v", err)
	}
}
