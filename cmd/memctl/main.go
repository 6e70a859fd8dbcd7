// memctl is an operational CLI for the memory graph: record episodes,
// actions, sensory inputs and facts for a user, and read them back.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"engram-backend/application/services"
	"engram-backend/domain/memory"
	"engram-backend/infrastructure/config"
	neo4jstore "engram-backend/infrastructure/persistence/neo4j"
	"engram-backend/pkg/observability"
)

const usage = `usage: memctl -user <id> <command> [args]

commands:
  record <text>            record a user utterance turn
  recall [-limit n]        list recent episodes
  related <query>          list episodes related to a query
  action <text>            record a performed action
  actions                  list performed actions
  sense <type> <text>      record a sensory input
  inputs                   list sensory inputs
  fact <subject> <desc>    store a semantic fact
  facts [subject]          list semantic facts
  post <text>              log a social interaction
  insights                 show social activity summary
  analyze <text>           run and persist full text analysis
`

func main() {
	if err := run(); err != nil {
		log.Fatalf("memctl: %v", err)
	}
}

func run() error {
	user := flag.String("user", "", "user id the command applies to")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 || *user == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := observability.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := neo4jstore.NewStore(ctx, neo4jstore.Config{
		URI:              cfg.Neo4jURI,
		Username:         cfg.Neo4jUser,
		Password:         cfg.Neo4jPassword,
		Database:         cfg.Neo4jDatabase,
		OperationTimeout: cfg.OperationTimeout,
		MaxRetries:       cfg.MaxReadRetries,
	}, logger)
	if err != nil {
		return err
	}

	svc, err := services.NewMemoryService(ctx, store, nil, nil, logger)
	if err != nil {
		return err
	}
	defer svc.CloseAll(context.Background())

	return dispatch(ctx, svc, *user, args[0], args[1:], logger)
}

func dispatch(ctx context.Context, svc *services.MemoryService, user, command string, args []string, logger *zap.Logger) error {
	switch command {
	case "record":
		text := joined(args)
		if text == "" {
			return fmt.Errorf("record needs text")
		}
		ep, err := svc.Episodic.Record(ctx, user, text, memory.RoleUser, nil, "")
		if err != nil {
			return err
		}
		fmt.Println(ep.ID)

	case "recall":
		fs := flag.NewFlagSet("recall", flag.ExitOnError)
		limit := fs.Int("limit", 5, "maximum episodes")
		if err := fs.Parse(args); err != nil {
			return err
		}
		for _, ep := range svc.Episodic.RecallRecent(ctx, user, *limit) {
			fmt.Printf("%s  %-4s  %s\n", ep.Timestamp, ep.Role, ep.Text)
		}

	case "related":
		query := joined(args)
		if query == "" {
			return fmt.Errorf("related needs a query")
		}
		for _, ep := range svc.Episodic.RecallRelated(ctx, user, query, 5) {
			fmt.Printf("%s  %-4s  %s\n", ep.Timestamp, ep.Role, ep.Text)
		}

	case "action":
		text := joined(args)
		if text == "" {
			return fmt.Errorf("action needs text")
		}
		return svc.Motor.Store(ctx, user, text)

	case "actions":
		for _, a := range svc.Motor.Actions(ctx, user) {
			fmt.Printf("%s  %s\n", a.Timestamp, a.Text)
		}

	case "sense":
		if len(args) < 2 {
			return fmt.Errorf("sense needs an input type and text")
		}
		ts, err := svc.Sensory.Record(ctx, user, args[0], joined(args[1:]))
		if err != nil {
			return err
		}
		fmt.Println(ts)

	case "inputs":
		for _, in := range svc.Sensory.Inputs(ctx, user) {
			fmt.Printf("%s  %-8s  %s\n", in.Timestamp, in.InputType, in.Text)
		}

	case "fact":
		if len(args) < 2 {
			return fmt.Errorf("fact needs a subject and a description")
		}
		return svc.Semantic.AddFact(ctx, args[0], joined(args[1:]))

	case "facts":
		var subject *string
		if len(args) > 0 {
			subject = &args[0]
		}
		for _, f := range svc.Semantic.Facts(ctx, subject) {
			fmt.Printf("%s: %s\n", f.Subject, f.Description)
		}

	case "post":
		text := joined(args)
		if text == "" {
			return fmt.Errorf("post needs text")
		}
		if err := svc.Social.RegisterUser(ctx, user); err != nil {
			return err
		}
		return svc.Social.LogInteraction(ctx, user, text)

	case "insights":
		insights := svc.Social.Insights(ctx, user)
		fmt.Printf("posts: %d\n", insights.PostCount)
		for _, topic := range insights.TopTopics {
			fmt.Printf("%4d  %s\n", topic.Count, topic.Text)
		}

	case "analyze":
		text := joined(args)
		if text == "" {
			return fmt.Errorf("analyze needs text")
		}
		a := svc.PAM.Analyze(ctx, text)
		if err := svc.PAM.Persist(ctx, user, a); err != nil {
			return err
		}
		fmt.Printf("sentiment: %s (%.2f)  entities: %d  gender: %s\n",
			a.Sentiment.Label, a.Sentiment.Polarity, len(a.Entities), a.Gender)

	default:
		logger.Error("unknown command", zap.String("command", command))
		flag.Usage()
		os.Exit(2)
	}
	return nil
}

func joined(args []string) string {
	return strings.Join(args, " ")
}
