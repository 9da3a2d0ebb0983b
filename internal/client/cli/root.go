package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.userEmail != "" {
		return fmt.Sprintf("(%s) ", a.userEmail)
	}
	return ""
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to the storage CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("fk %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: upload <path> [title], (l)ist, stats, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, list, stats, exit")
			}

		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "logout":
			a.logout(ctx)
		case "upload":
			a.upload(ctx, args)
		case "l", "list":
			a.list(ctx)
		case "stats":
			a.stats(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}
