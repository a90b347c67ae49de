package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/bmazoyer/scribe"
	"github.com/bmazoyer/scribe/access"
	"github.com/bmazoyer/scribe/bleve"
	"github.com/bmazoyer/scribe/bolt"
	"github.com/bmazoyer/scribe/jwt"
	"github.com/bmazoyer/scribe/log"
	"github.com/bmazoyer/scribe/realtime"
)

var (
	// flags
	verbose bool
	env     string

	// logger
	logger log.Logger

	// auth
	tokenEncoder *jwt.EncodeDecoder

	// drivers
	boltDriver *bolt.Driver
	noteIndex  *bleve.NoteIndex

	// stores
	noteStore         scribe.NoteStore
	userStore         scribe.UserStore
	collaboratorStore scribe.CollaboratorStore
	folderStore       scribe.FolderStore
	taskStore         scribe.TaskStore
	labelStore        scribe.LabelStore
	attachmentStore   scribe.AttachmentStore

	// services
	realtimeService *realtime.Service

	// config
	cfg Configuration
)

type Configuration struct {
	Auth struct {
		Key string `toml:"key"`
	} `toml:"auth"`
	Bolt struct {
		Store string `toml:"store"`
	} `toml:"bolt"`
	Bleve struct {
		Store string `toml:"store"`
	} `toml:"bleve"`
	HTTP struct {
		Addr string `toml:"addr"`
	} `toml:"http"`
	Realtime struct {
		RequireReadAccess bool `toml:"require_read_access"`
	} `toml:"realtime"`
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose mode")
	RootCmd.PersistentFlags().StringVar(&env, "env", "dev", "environment")
}

var RootCmd = cobra.Command{
	Use:   "scribe",
	Short: "Notes and tasks, shared and edited live",
	Long:  "Notes and tasks, shared and edited live",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load configuration
		cfgData, err := ioutil.ReadFile(fmt.Sprintf("configuration/config.%s.toml", env))
		if err != nil {
			fmt.Println("error reading configuration:", err)
			return
		}

		err = toml.Unmarshal(cfgData, &cfg)
		if err != nil {
			fmt.Println("error unmarshalling configuration:", err)
			return
		}

		// Create logger
		logger = log.New(env)

		// Create encoder
		keyData, err := ioutil.ReadFile(cfg.Auth.Key)
		if err != nil {
			logger.Fatal("could not open key file:", err)
		}
		var key scribe.SigningKey
		err = json.Unmarshal(keyData, &key)
		if err != nil {
			logger.Fatal("could not read key file:", err)
		}
		tokenEncoder = jwt.NewEncodeDecoder([]byte(key.Key))

		// Create stores
		boltDriver = &bolt.Driver{}
		if err := boltDriver.Open(cfg.Bolt.Store); err != nil {
			logger.Fatal("could not open bolt store:", err)
		}
		noteStore = &bolt.NoteStore{Driver: boltDriver}
		userStore = &bolt.UserStore{Driver: boltDriver}
		collaboratorStore = &bolt.CollaboratorStore{Driver: boltDriver}
		folderStore = &bolt.FolderStore{Driver: boltDriver}
		taskStore = &bolt.TaskStore{Driver: boltDriver}
		labelStore = &bolt.LabelStore{Driver: boltDriver}
		attachmentStore = &bolt.AttachmentStore{Driver: boltDriver}

		// Create index
		noteIndex = &bleve.NoteIndex{}
		if err := noteIndex.Open(cfg.Bleve.Store); err != nil {
			logger.Fatal("could not open note index:", err)
		}

		// Create services
		resolver := &access.Resolver{Notes: noteStore, Collaborators: collaboratorStore}
		realtimeService = realtime.NewService(noteStore, resolver, cfg.Realtime.RequireReadAccess, logger)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if boltDriver != nil {
			boltDriver.Close()
		}
		if noteIndex != nil {
			noteIndex.Close()
		}
	},
}
