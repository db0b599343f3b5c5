package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/todo-knk/xibalba/internal/engine"
	"github.com/todo-knk/xibalba/internal/infrastructure/storage"
	"github.com/todo-knk/xibalba/pkg/logger"
)

func main() {
	if len(os.Args) < 3 {
		printHelp()
		return
	}
	logger.InitWithOutput(io.Discard)

	session, err := storage.LoadFile(os.Args[2])
	if err != nil {
		fmt.Printf("Cannot read replay: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "info":
		fmt.Printf("seed:     %d\n", session.Seed)
		fmt.Printf("depth:    %d\n", session.Depth)
		fmt.Printf("recorded: %s\n", time.Unix(session.Timestamp, 0).Format(time.RFC3339))
		fmt.Printf("actions:  %d\n", len(session.Actions))
	case "dump":
		for i, act := range session.Actions {
			fmt.Printf("%4d turn=%-5d %-8s %s\n", i, act.Turn, act.Action, act.Payload)
		}
	case "verify":
		// Прогоняет запись и печатает итог: так видно, что партия детерминирована
		cfg := engine.NewConfig()
		if len(os.Args) > 3 {
			if cfg, err = engine.LoadConfig(os.Args[3]); err != nil {
				fmt.Printf("Invalid config: %v\n", err)
				os.Exit(1)
			}
		}
		g, err := engine.Replay(context.Background(), cfg, session)
		if err != nil {
			fmt.Printf("Replay failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("turn:  " + strconv.Itoa(g.World().Turn))
		fmt.Println("depth: " + strconv.Itoa(g.Depth()))
		fmt.Printf("over:  %v\n", g.GameOver())
	default:
		printHelp()
	}
}

func printHelp() {
	fmt.Println(`Replay Utility - просмотр записей партий (.xbrp)
Commands:
  info <file>            - заголовок записи: зерно, глубина, время
  dump <file>            - список команд по ходам
  verify <file> [config] - проиграть запись и показать итог`)
}
