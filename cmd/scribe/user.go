package main

import (
	"encoding/json"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bmazoyer/scribe"
)

func init() {
	UserCommand.AddCommand(&UserAllCommand)
	UserCommand.AddCommand(&TokenCommand)
	RootCmd.AddCommand(&UserCommand)
}

var UserCommand = cobra.Command{
	Use:   "user",
	Short: "Inspect registered users",
	Long:  "Inspect registered users",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			logger.Fatal("user wants 1 argument: the id of the user")
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			logger.Fatal("error converting user id: ", err)
		}

		user, err := userStore.Get(id)
		if err != nil {
			logger.Fatal("error retrieving user:", err)
		} else if user == nil {
			logger.Fatal("no user with id ", id)
		}

		data, err := formatUser(user)
		if err != nil {
			logger.Fatal(err)
		}
		logger.Print(data)
	},
}

var UserAllCommand = cobra.Command{
	Use:   "all",
	Short: "List all users",
	Long:  "List all users",
	Run: func(cmd *cobra.Command, args []string) {
		users, err := userStore.List()
		if err != nil {
			logger.Fatal("error listing users:", err)
		}

		for _, user := range users {
			data, err := formatUser(user)
			if err != nil {
				logger.Fatal(err)
			}
			logger.Print(data)
		}
	},
}

var TokenCommand = cobra.Command{
	Use:   "token",
	Short: "Mint a token for a user",
	Long:  "Mint a token for a user",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			logger.Fatal("user token wants 1 argument: the id of the user")
		}

		userID, err := strconv.Atoi(args[0])
		if err != nil {
			logger.Fatal("error converting user id: ", err)
		}

		token, err := tokenEncoder.Encode(userID)
		if err != nil {
			logger.Fatal(err)
		}

		logger.Print(token)
	},
}

func formatUser(user *scribe.User) (string, error) {
	view := struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}{user.ID, user.Name, user.Email}

	data, err := json.Marshal(view)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
