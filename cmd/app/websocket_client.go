package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"
)

type userUpdate struct {
	Type string `json:"type"`
	Data struct {
		ID          string   `json:"_id"`
		BusinessID  string   `json:"businessId"`
		State       bool     `json:"state"`
		Roles       []string `json:"roles"`
		GeneralInfo struct {
			Name     string `json:"name"`
			Lastname string `json:"lastname"`
			Email    string `json:"email"`
		} `json:"generalInfo"`
	} `json:"data"`
}

func main() {
	host := flag.String("host", "localhost:10000", "api host")
	raw := flag.Bool("raw", false, "print frames as received")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("Usage: go run ./cmd/app [-host localhost:10000] [-raw] <JWT_TOKEN>")
	}

	token := flag.Arg(0)
	url := fmt.Sprintf("ws://%s/api/v1/subscriptions/user-updated", *host)
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	fmt.Printf("Connecting to %s...\n", url)
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		log.Fatal("Failed to connect:", err)
	}
	defer conn.Close()

	fmt.Println("Connected! Waiting for user updates...")
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			if *raw {
				fmt.Printf("%s\n", string(message))
				continue
			}

			var update userUpdate
			if err := json.Unmarshal(message, &update); err != nil {
				fmt.Printf("%s\n", string(message))
				continue
			}
			u := update.Data
			fmt.Printf("[%s] %s business=%s %s %s <%s> active=%t roles=%v\n",
				update.Type, u.ID, u.BusinessID, u.GeneralInfo.Name, u.GeneralInfo.Lastname, u.GeneralInfo.Email, u.State, u.Roles)
		}
	}()

	select {
	case <-done:
		return
	case <-interrupt:
		fmt.Println("\nDisconnecting...")

		err := conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		if err != nil {
			log.Println("Write close:", err)
			return
		}

		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}
