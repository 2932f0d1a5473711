package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "quest-master"
	app.Usage = "Quest tracking for Discord communities"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   "config.toml",
			Usage:   "path of the TOML config file",
			EnvVars: []string{"QUEST_CONFIG"},
		},
	}
	app.Before = s.loadConfig
	app.Commands = []*cli.Command{
		{
			Action:      s.startWorker,
			Name:        "worker",
			Usage:       "Start trigger worker",
			Category:    "Worker",
			Description: `Consumes accept, reaction and message events and notifies participants.`,
		},
		{
			Action:      s.startInteraction,
			Name:        "interaction",
			Usage:       "Start interaction server",
			Category:    "Api",
			Description: `Serves the Discord interactions webhook (accept buttons, slash commands).`,
		},
		{
			Action:      s.startCron,
			Name:        "cron",
			Usage:       "Start scheduled quest posts",
			Category:    "Worker",
			Description: `Posts the daily and weekly quest listings.`,
		},
		{
			Action:   s.startMigrate,
			Name:     "migrate",
			Usage:    "Migrate database schema",
			Category: "Tool",
		},
		{
			Name:     "catalog",
			Usage:    "Manage the quest catalog",
			Category: "Tool",
			Subcommands: []*cli.Command{
				{
					Action:    s.validateCatalog,
					Name:      "validate",
					Usage:     "Parse a catalog document and print its quests",
					ArgsUsage: "[path]",
				},
				{
					Action:    s.publishCatalog,
					Name:      "publish",
					Usage:     "Upload a catalog document to the configured bucket",
					ArgsUsage: "<path>",
				},
				{
					Action:    s.resetRotation,
					Name:      "reset-rotation",
					Usage:     "Start a new rotation cycle",
					ArgsUsage: "<category>...",
				},
			},
		},
		{
			Action:   s.publishTrigger,
			Name:     "trigger",
			Usage:    "Publish a trigger event, as the gateway does",
			Category: "Tool",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "kind", Required: true, Usage: "accept, reaction, message or manual"},
				&cli.StringFlag{Name: "user", Required: true},
				&cli.StringFlag{Name: "name"},
				&cli.StringFlag{Name: "quest"},
				&cli.StringFlag{Name: "emoji"},
				&cli.StringFlag{Name: "text"},
				&cli.StringFlag{Name: "channel"},
			},
		},
	}

	s.app = app
}
