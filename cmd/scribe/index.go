package main

import (
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(&ReindexCommand)
}

// ReindexCommand rebuilds the full-text index from the note store, user
// by user. Useful after restoring a database or changing the mapping.
var ReindexCommand = cobra.Command{
	Use:   "reindex",
	Short: "Reindex all the notes",
	Long:  "Reindex all the notes",
	Run: func(cmd *cobra.Command, args []string) {
		users, err := userStore.List()
		if err != nil {
			logger.Fatal("error listing users:", err)
		}

		total := 0
		for _, user := range users {
			notes, err := noteStore.List(user.ID)
			if err != nil {
				logger.Fatal("error listing notes:", err)
			}

			for _, note := range notes {
				if err := noteIndex.Index(note); err != nil {
					logger.Fatal("error indexing note:", err)
				}

				if verbose {
					logger.Print("note ", note.ID, " reindexed")
				}
				total++
			}
		}

		logger.Print("done, ", total, " notes reindexed")
	},
}
