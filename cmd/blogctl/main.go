package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/5w1tchy/blog-ui/internal/cli"
	"github.com/joho/godotenv"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: blogctl [-base URL] local|strength\n")
	flag.PrintDefaults()
}

func main() {
	_ = godotenv.Load()

	def := os.Getenv("BLOG_BASE_URL")
	if def == "" {
		def = "http://localhost:3000"
	}
	base := flag.String("base", def, "blog UI service base URL")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app, err := cli.NewApp(*base, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	pwd, err := cli.GetPassword(os.Stdin, os.Stderr)
	if err != nil {
		log.Fatalf("read password: %v", err)
	}

	switch flag.Arg(0) {
	case "local":
		app.Local(pwd)
	case "strength":
		if err := app.Remote(ctx, pwd); err != nil {
			log.Fatalf("%v", err)
		}
	default:
		usage()
		os.Exit(2)
	}
}
