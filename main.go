// @title Hackathon Judging API
// @version 1.0
// @description Backend API for judges scoring hackathon teams and the admin leaderboard

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name auth_token
package main

import (
	_ "github.com/alex-pricope/hackathon-judging/docs"

	"github.com/alex-pricope/hackathon-judging/cmd"
)

func main() {
	cmd.Execute()
}
