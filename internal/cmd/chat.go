package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/suhome/storefront/internal/chat"
	"github.com/suhome/storefront/internal/models"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the support conversation",
	Long: `Open an interactive support conversation.

Messages appear optimistically and are reconciled against the server by
polling and the push stream. If the backend is unreachable the chat
goes offline until you type /retry; guests keep one conversation across
restarts via a persisted client token, and it is linked to the account
after login.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.Chat.Open()
	go a.Chat.Run(ctx)

	fmt.Println("💬 Support chat. Type a message, /retry to reconnect, /quit to leave.")

	// Render new messages as they arrive.
	go func() {
		var seen int
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(500 * time.Millisecond):
			}
			messages := a.Chat.Messages()
			for ; seen < len(messages); seen++ {
				printMessage(messages[seen])
			}
			if errText := a.Chat.SyncError(); errText != "" && a.Chat.Availability() == chat.Unavailable {
				fmt.Printf("⚠️  Chat offline: %s (type /retry)\n", errText)
			}
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit":
			a.Chat.Close()
			return nil
		case "/retry":
			a.Chat.Retry()
			fmt.Println("🔄 Retrying...")
			continue
		}
		if err := a.Chat.Send(ctx, line, nil); err != nil {
			fmt.Printf("⚠️  Send failed: %v\n", err)
		}
	}
	a.Chat.Close()
	return scanner.Err()
}

func printMessage(msg models.ChatMessage) {
	icon := "🧑"
	if msg.From == models.FromAssistant {
		icon = "🎧"
	}
	when := time.UnixMilli(msg.Timestamp).Format("15:04")
	fmt.Printf("%s [%s] %s\n", icon, when, msg.Text)
	for _, att := range msg.Attachments {
		fmt.Printf("   📎 %s\n", att.FileName)
	}
}
