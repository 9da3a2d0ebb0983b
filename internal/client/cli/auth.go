package cli

import (
	"context"
	"log"
	"os"
)

func (a *App) register(ctx context.Context) {

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	if err := a.client.Register(ctx, email, password); err != nil {
		log.Printf("Registration unsuccessfull: %s", err.Error())
		return
	}

	log.Println("Registration successfull, you can now log in")
}

func (a *App) login(ctx context.Context) {

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	if err := a.client.Login(ctx, email, password); err != nil {
		log.Printf("Login unsuccessfull: %s", err.Error())
		return
	}

	a.userEmail = email
	log.Println("Login successfull")
}

func (a *App) logout(ctx context.Context) {
	if err := a.client.Logout(ctx); err != nil {
		log.Printf("Logout unsuccessfull: %s", err.Error())
		return
	}
	a.userEmail = ""
	log.Println("Logged out")
}
