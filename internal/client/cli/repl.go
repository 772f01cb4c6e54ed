package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	Search(ctx context.Context, terms string) error
	Filter(ctx context.Context, facet, value string) error
	ResetFilters(ctx context.Context) error
	Results(ctx context.Context) error
	Home(ctx context.Context) error

	Profile(ctx context.Context) error
	UpdateInfo(ctx context.Context) error
	Language(ctx context.Context, lang string) error
	DeleteAccount(ctx context.Context) error

	AddPhone(ctx context.Context) error
	DeletePhone(ctx context.Context, id string) error
	AddEmail(ctx context.Context) error
	EditEmail(ctx context.Context, id string) error
	DeleteEmail(ctx context.Context, id string) error
	AddAddress(ctx context.Context) error
	DeleteAddress(ctx context.Context, id string) error

	MyAds(ctx context.Context) error
	Sell(ctx context.Context) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Upgrade(ctx context.Context, id string) error
	Upload(ctx context.Context, id, path string) error

	Favorites(ctx context.Context) error
	ToggleFav(ctx context.Context, id string) error

	Comments(ctx context.Context, id string) error
	AddComment(ctx context.Context, id string) error
}

const helpLoggedOut = "Available commands: register, login, search <terms>, filter <facet> <value>, reset, results, home, comments <id>, exit"

const helpLoggedIn = `Available commands:
  search <terms>         full-text search
  filter <facet> <value> set a facet (brand, model, region, color, memory, price_from, price_to, condition, top)
  reset                  clear all filters
  results                show the current result set
  home                   homepage products and brands
  profile | update | language <code>
  addphone | delphone <id> | addemail | editemail <id> | delemail <id>
  addaddress | deladdress <id>
  myads | sell | archive <id> | unarchive <id> | upgrade <id> | upload <id> <file>
  favorites | fav <product_id>
  comments <product_id> | comment <product_id>
  logout | delete-account | exit`

// runREPL starts a read–eval–print loop for the marketplace CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are printed and swallowed here;
// this keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	report := func(err error) {
		if err != nil {
			printlnFn(err.Error())
		}
	}
	// needArgs prints a usage line when a command is missing arguments.
	needArgs := func(args []string, n int, usage string) bool {
		if len(args) < n {
			printlnFn("Usage: " + usage)
			return false
		}
		return true
	}

	for {
		printlnFn(fmt.Sprintf("phono %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		case "register":
			report(a.Register(ctx))
			continue
		case "login":
			report(a.Login(ctx))
			continue
		case "search":
			report(a.Search(ctx, strings.Join(args, " ")))
			continue
		case "filter":
			if needArgs(args, 2, "filter <facet> <value>") {
				report(a.Filter(ctx, args[0], args[1]))
			}
			continue
		case "reset":
			report(a.ResetFilters(ctx))
			continue
		case "results":
			report(a.Results(ctx))
			continue
		case "home":
			report(a.Home(ctx))
			continue
		case "comments":
			if needArgs(args, 1, "comments <product_id>") {
				report(a.Comments(ctx, args[0]))
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if !a.isLoggedIn() {
			printlnFn("Please login first (or type 'help').")
			continue
		}

		switch cmd {
		case "profile":
			report(a.Profile(ctx))
		case "update":
			report(a.UpdateInfo(ctx))
		case "language":
			if needArgs(args, 1, "language <code>") {
				report(a.Language(ctx, args[0]))
			}
		case "addphone":
			report(a.AddPhone(ctx))
		case "delphone":
			if needArgs(args, 1, "delphone <id>") {
				report(a.DeletePhone(ctx, args[0]))
			}
		case "addemail":
			report(a.AddEmail(ctx))
		case "editemail":
			if needArgs(args, 1, "editemail <id>") {
				report(a.EditEmail(ctx, args[0]))
			}
		case "delemail":
			if needArgs(args, 1, "delemail <id>") {
				report(a.DeleteEmail(ctx, args[0]))
			}
		case "addaddress":
			report(a.AddAddress(ctx))
		case "deladdress":
			if needArgs(args, 1, "deladdress <id>") {
				report(a.DeleteAddress(ctx, args[0]))
			}
		case "myads":
			report(a.MyAds(ctx))
		case "sell":
			report(a.Sell(ctx))
		case "archive":
			if needArgs(args, 1, "archive <id>") {
				report(a.Archive(ctx, args[0]))
			}
		case "unarchive":
			if needArgs(args, 1, "unarchive <id>") {
				report(a.Unarchive(ctx, args[0]))
			}
		case "upgrade":
			if needArgs(args, 1, "upgrade <id>") {
				report(a.Upgrade(ctx, args[0]))
			}
		case "upload":
			if needArgs(args, 2, "upload <product_id> <file>") {
				report(a.Upload(ctx, args[0], args[1]))
			}
		case "favorites":
			report(a.Favorites(ctx))
		case "fav", "unfav":
			if needArgs(args, 1, cmd+" <product_id>") {
				report(a.ToggleFav(ctx, args[0]))
			}
		case "comment":
			if needArgs(args, 1, "comment <product_id>") {
				report(a.AddComment(ctx, args[0]))
			}
		case "logout":
			report(a.Logout(ctx))
		case "delete-account":
			report(a.DeleteAccount(ctx))
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
