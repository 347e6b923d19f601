package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pdf-agent/internal/di"
	"pdf-agent/internal/domain/entity"
	"pdf-agent/internal/infrastructure/env"
)

func main() {
	envService := env.NewEnvService()

	container, err := di.NewContainer(di.Config{
		Provider:      envService.GetDefault("LLM_PROVIDER", "anthropic"),
		APIKey:        envService.MustGet("LLM_API_KEY"),
		Model:         envService.MustGet("LLM_MODEL_NAME"),
		BaseURL:       envService.Get("LLM_BASE_URL"),
		DataDir:       envService.GetDefault("DATA_DIR", "data"),
		PublicBaseURL: envService.Get("PUBLIC_BASE_URL"),
		LogName:       "cli",
	})
	if err != nil {
		log.Fatalf("init failed: %v", err)
	}
	defer container.Close()

	ctx := context.Background()
	sessionID := fmt.Sprintf("cli-%d", time.Now().Unix())

	for _, path := range os.Args[1:] {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("read %s: %v", path, err)
		}
		doc, err := container.UploadOriginal(ctx, sessionID, filepath.Base(path), data)
		if err != nil {
			log.Fatalf("upload %s: %v", path, err)
		}
		fmt.Printf("uploaded %s (id=%s, %d pages)\n", doc.Name, doc.ID, doc.PageCount)
	}

	fmt.Println("\nDescribe what to do with your PDFs (\"exit\" to quit):")
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("\n> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		turnCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
		result := container.Chat(turnCtx, sessionID, line, printEvent)
		cancel()

		fmt.Println("\n" + result.FinalText)
		for _, doc := range result.Documents {
			if doc.Kind == entity.DocumentRevised {
				fmt.Printf("  -> %s (id=%s) %s\n", doc.Name, doc.ID, doc.URL)
			}
		}
	}
}

func printEvent(ev entity.AgentLogEvent) {
	switch ev.Kind {
	case entity.EventToolUse:
		fmt.Printf("  [tool] %s %s\n", ev.ToolName, compact(string(ev.Input)))
	case entity.EventToolResult:
		fmt.Printf("  [done] %s\n", compact(ev.Output))
	case entity.EventError:
		fmt.Printf("  [error] %s\n", ev.Error)
	}
}

func compact(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
