package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atinyakov/formulaone/internal/client"
	"github.com/atinyakov/formulaone/internal/models"
	"golang.org/x/term"
)

var (
	version   string
	buildDate string
)

// promptLine prints label and reads a single trimmed line from stdin.
func promptLine(scanner *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

// promptPassword reads a password without echo when stdin is a terminal.
func promptPassword(scanner *bufio.Scanner) string {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptLine(scanner, "Password: ")
	}
	fmt.Print("Password: ")
	b, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		log.Fatalf("read password: %v", err)
	}
	return string(b)
}

// main parses command-line flags and dispatches to the requested command.
func main() {
	var (
		cmd       string
		baseURL   string
		caFile    string
		tokenFile string
		email     string
		password  string
		showVer   bool
	)

	flag.StringVar(&cmd, "cmd", "", "command: register | login | teams | add-team")
	flag.StringVar(&baseURL, "url", "https://localhost:8443", "server base URL")
	flag.StringVar(&caFile, "ca", "certs/ca.crt", "path to CA cert (empty uses system roots)")
	flag.StringVar(&tokenFile, "token", ".formulaone-token", "path to the saved access token")
	flag.StringVar(&email, "email", "", "account email")
	flag.StringVar(&password, "password", "", "account password (prompted when empty)")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("FormulaOne Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	httpClient, err := client.NewHTTPClient(caFile)
	if err != nil {
		log.Fatal(err)
	}
	api := client.New(baseURL, httpClient)
	store := client.TokenStore{Path: tokenFile}
	scanner := bufio.NewScanner(os.Stdin)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cmd {
	case "register", "login":
		if email == "" {
			email = promptLine(scanner, "Email: ")
		}
		if password == "" {
			password = promptPassword(scanner)
		}
		creds := models.Credentials{Email: email, Password: password}

		var token string
		if cmd == "register" {
			token, err = api.Register(ctx, creds)
		} else {
			token, err = api.Login(ctx, creds)
		}
		if err != nil {
			log.Fatal(err)
		}
		if err := store.Save(token); err != nil {
			log.Fatal(err)
		}
		fmt.Println("✅ Authenticated. Token saved to", tokenFile)
	case "teams":
		if api.Token, err = store.Load(); err != nil {
			log.Fatal(err)
		}
		teams, err := api.ListTeams(ctx)
		if err != nil {
			log.Fatal(err)
		}
		for _, t := range teams {
			fmt.Printf("%d\t%s\t%s\t%d\n", t.ID, t.Name, t.Country, t.Year)
		}
	case "add-team":
		if api.Token, err = store.Load(); err != nil {
			log.Fatal(err)
		}
		team := models.Team{
			Name:    promptLine(scanner, "Name: "),
			Country: promptLine(scanner, "Country: "),
		}
		if team.Year, err = strconv.Atoi(promptLine(scanner, "Year: ")); err != nil {
			log.Fatalf("invalid year: %v", err)
		}
		created, err := api.CreateTeam(ctx, team)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Team created with id %d\n", created.ID)
	default:
		log.Fatalf("unknown command: %s", cmd)
	}
}
