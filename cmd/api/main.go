// Command api starts the TalentBrains HTTP server.
package main

import (
	"log"

	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/server"
)

func main() {
	srv := server.NewServer()

	log.Printf("Listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("cannot start server: %s", err)
	}
}
