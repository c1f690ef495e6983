package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// Minimal row shapes, just enough to follow references
type playerRow struct {
	UUID   string  `json:"uuid"`
	Name   string  `json:"name"`
	Empire *string `json:"empire"`
}

type cellRow struct {
	Empire string `json:"empire"`
}

// Scans for rows referencing empires that no longer exist: players
// still affiliated to a deleted empire, and territory cells still owned
// by one. A crash mid-dissolution can leave these behind.
func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)

	empireIDs := map[string]bool{}
	iter := client.Scan(ctx, 0, "empire:*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		// skip the name index rows
		if len(key) > len("empire:name:") && key[:len("empire:name:")] == "empire:name:" {
			continue
		}
		empireIDs[key[len("empire:"):]] = true
	}
	if err := iter.Err(); err != nil {
		log.Fatal("Error during empire scan:", err)
	}
	fmt.Printf("Found %d empires\n", len(empireIDs))

	var danglingPlayers []string
	iter = client.Scan(ctx, 0, "player:*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		data, err := client.Get(ctx, key).Result()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		var row playerRow
		if err := json.Unmarshal([]byte(data), &row); err != nil {
			fmt.Printf("✗ Corrupted JSON in %s\n", key)
			continue
		}
		if row.Empire != nil && !empireIDs[*row.Empire] {
			fmt.Printf("✗ Player %s (%s) points at missing empire %s\n", row.Name, key, *row.Empire)
			danglingPlayers = append(danglingPlayers, key)
		}
	}
	if err := iter.Err(); err != nil {
		log.Fatal("Error during player scan:", err)
	}

	var danglingCells []string
	iter = client.Scan(ctx, 0, "territory:*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		data, err := client.Get(ctx, key).Result()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		var row cellRow
		if err := json.Unmarshal([]byte(data), &row); err != nil {
			fmt.Printf("✗ Corrupted JSON in %s\n", key)
			continue
		}
		if !empireIDs[row.Empire] {
			fmt.Printf("✗ Cell %s owned by missing empire %s\n", key, row.Empire)
			danglingCells = append(danglingCells, key)
		}
	}
	if err := iter.Err(); err != nil {
		log.Fatal("Error during territory scan:", err)
	}

	total := len(danglingPlayers) + len(danglingCells)
	fmt.Printf("\nFound %d dangling players, %d dangling cells\n", len(danglingPlayers), len(danglingCells))
	if total == 0 {
		fmt.Println("No dangling references found!")
		return
	}

	fmt.Print("\nRepair? Players are detached, cells deleted. (yes/no): ")
	var response string
	fmt.Scanln(&response)
	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for _, key := range danglingPlayers {
		data, err := client.Get(ctx, key).Result()
		if err != nil {
			fmt.Printf("Failed to re-read %s: %v\n", key, err)
			continue
		}
		var row map[string]json.RawMessage
		if err := json.Unmarshal([]byte(data), &row); err != nil {
			continue
		}
		row["empire"] = json.RawMessage("null")
		row["position"] = json.RawMessage("null")
		fixed, err := json.Marshal(row)
		if err != nil {
			continue
		}
		if err := client.Set(ctx, key, fixed, 0).Err(); err != nil {
			fmt.Printf("Failed to detach %s: %v\n", key, err)
		} else {
			fmt.Printf("Detached %s\n", key)
		}
	}

	for _, key := range danglingCells {
		if err := client.Del(ctx, key).Err(); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", key, err)
		} else {
			fmt.Printf("Deleted %s\n", key)
		}
	}

	fmt.Println("\nCleanup complete!")
}
