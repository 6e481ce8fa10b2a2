// The tasklist command is a terminal consumer of the task list API:
//
//	tasklist list
//	tasklist add <title> [description]
//	tasklist show <id>
//	tasklist edit <id> <title> [description]
//	tasklist done <id>
//	tasklist rm <id>
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/kalpovskii/tasklist/internal/app/models"
	"github.com/kalpovskii/tasklist/internal/client"
	"github.com/spf13/viper"
)

func initConfig() {
	viper.SetEnvPrefix("TASKLIST")
	viper.AutomaticEnv()

	viper.SetDefault("API_URL", "http://localhost:3000")
}

func main() {
	log.SetFlags(0)
	initConfig()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	api := client.New(viper.GetString("API_URL"))
	ctx := context.Background()

	if err := run(ctx, api, os.Args[1], os.Args[2:]); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, api *client.Client, cmd string, args []string) error {
	switch cmd {
	case "list":
		tasks, err := api.List(ctx)
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Println("no tasks")
			return nil
		}
		for _, t := range tasks {
			printTask(t)
		}
		return nil

	case "add":
		if len(args) < 1 {
			return fmt.Errorf("usage: tasklist add <title> [description]")
		}
		req := models.CreateTaskRequest{Title: args[0]}
		if len(args) > 1 {
			req.Description = args[1]
		}
		task, err := api.Create(ctx, req)
		if err != nil {
			return err
		}
		printTask(*task)
		return nil

	case "show":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		task, err := api.Get(ctx, id)
		if err != nil {
			return err
		}
		printTask(*task)
		return nil

	case "edit":
		if len(args) < 2 {
			return fmt.Errorf("usage: tasklist edit <id> <title> [description]")
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task id %q", args[0])
		}
		upd := models.UpdateTaskRequest{Title: &args[1]}
		if len(args) > 2 {
			upd.Description = &args[2]
		}
		task, err := api.Update(ctx, id, upd)
		if err != nil {
			return err
		}
		printTask(*task)
		return nil

	case "done":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		completed := true
		task, err := api.Update(ctx, id, models.UpdateTaskRequest{Completed: &completed})
		if err != nil {
			return err
		}
		printTask(*task)
		return nil

	case "rm":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		if err := api.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Println("deleted", id)
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func parseID(args []string) (uuid.UUID, error) {
	if len(args) < 1 {
		return uuid.Nil, fmt.Errorf("task id is required")
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid task id %q", args[0])
	}
	return id, nil
}

func printTask(t models.Task) {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	fmt.Printf("[%s] %s  %s", mark, t.ID, t.Title)
	if t.Description != "" {
		fmt.Printf("  (%s)", t.Description)
	}
	fmt.Println()
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: tasklist <list|add|show|edit|done|rm> [args]")
}
