package main

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/bmazoyer/scribe/gin"
)

var HTTPCommand = cobra.Command{
	Use:   "http",
	Short: "Start the web server",
	Long:  "Start the web server",
	Run: func(cmd *cobra.Command, args []string) {
		stores := gin.Stores{
			Notes:         noteStore,
			Users:         userStore,
			Collaborators: collaboratorStore,
			Folders:       folderStore,
			Tasks:         taskStore,
			Labels:        labelStore,
			Attachments:   attachmentStore,
			Index:         noteIndex,
		}

		handler, err := gin.New(stores, tokenEncoder, realtimeService, logger)
		if err != nil {
			logger.Fatal("could not create server:", err)
		}

		addr := cfg.HTTP.Addr
		if addr == "" {
			addr = ":1705"
		}

		logger.Print("server started, listening on", addr)
		logger.Fatal(http.ListenAndServe(addr, handler))
	},
}
