// Command chat is a terminal chat window for the studyplan API.
//
//	chat -server http://localhost:3001 -user <id>
//	chat -server http://localhost:3001 -token <jwt>
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/chlyn/COSC369-Final-Project/internal/dto"
	"github.com/chlyn/COSC369-Final-Project/pkg/client"
)

const helpText = `commands:
  /new          start a new conversation
  /load <id>    open a saved conversation
  /list         list saved conversations
  /schedule     show the current schedule
  /quit         exit`

func main() {
	server := flag.String("server", "http://localhost:3001", "API base URL")
	userID := flag.String("user", "", "user id (when not using a token)")
	token := flag.String("token", "", "bearer token")
	timeout := flag.Duration("timeout", 90*time.Second, "per-request timeout")
	flag.Parse()

	if *userID == "" && *token == "" {
		color.Red("either -user or -token is required")
		os.Exit(2)
	}

	api := client.New(*server, client.WithToken(*token))
	session := client.NewChatSession(api, *userID)

	color.Cyan("studyplan chat, type /help for commands")

	in := bufio.NewScanner(os.Stdin)
	in.Buffer(make([]byte, 64*1024), 64*1024)
	for {
		fmt.Print(color.New(color.FgYellow).Sprint("you> "))
		if !in.Scan() {
			break
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		quit := run(ctx, api, session, *userID, line)
		cancel()
		if quit {
			return
		}
	}
	if err := in.Err(); err != nil {
		color.Red("read input: %v", err)
		os.Exit(1)
	}
}

// run handles one input line and reports whether to exit.
func run(ctx context.Context, api *client.Client, s *client.ChatSession, userID, line string) bool {
	if !strings.HasPrefix(line, "/") {
		reply, err := s.Send(ctx, line)
		if err != nil {
			printErr(err)
			return false
		}
		color.Green("assistant> %s", reply)
		return false
	}

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "/quit", "/exit":
		return true
	case "/help":
		fmt.Println(helpText)
	case "/new":
		s.Reset()
		color.Cyan("new conversation")
	case "/load":
		if arg == "" {
			color.Red("usage: /load <id>")
			return false
		}
		if err := s.Load(ctx, arg); err != nil {
			printErr(err)
			return false
		}
		printTranscript(s.History())
	case "/list":
		list, err := api.Conversations(ctx, userID)
		if err != nil {
			printErr(err)
			return false
		}
		if len(list) == 0 {
			fmt.Println("no saved conversations")
		}
		for _, c := range list {
			fmt.Printf("%s  %s  %s\n", c.ID, c.UpdatedAt.Local().Format("2006-01-02 15:04"), c.Title)
		}
	case "/schedule":
		sched, err := api.Schedule(ctx, userID, arg)
		if err != nil {
			printErr(err)
			return false
		}
		color.Cyan("%s", sched.Semester)
		if len(sched.Classes) == 0 {
			fmt.Println("no classes")
		}
		for _, c := range sched.Classes {
			fmt.Printf("%-8s %-32s %s %s-%s  %s\n", c.ID, c.Name, strings.Join(c.Days, ""), c.Start, c.End, c.Location)
		}
	default:
		color.Red("unknown command %s", cmd)
	}
	return false
}

func printTranscript(msgs []dto.ChatMessage) {
	for _, m := range msgs {
		if m.Role == "user" {
			color.Yellow("you> %s", m.Content)
		} else {
			color.Green("assistant> %s", m.Content)
		}
	}
}

func printErr(err error) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		color.Red("error: %s", apiErr.Message)
		return
	}
	color.Red("error: %v", err)
}
