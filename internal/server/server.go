package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/database"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/storage"
)

// MyServer holds the dependencies shared by route handlers.
type MyServer struct {
	DB      *database.DBinstanceStruct
	Storage storage.Client
}

// NewServer constructs the configured http.Server. The storage client is
// only created when GCS_BUCKET_NAME is set; uploads fall back to inline
// rows without it.
func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialized: %s", err)
	}

	var store storage.Client
	if bucket := os.Getenv("GCS_BUCKET_NAME"); bucket != "" {
		client, err := storage.NewCloudStorageClient(bucket)
		if err != nil {
			log.Fatalf("Cloud storage failed to initialized: %s", err)
		}
		store = client
	} else {
		log.Println("GCS_BUCKET_NAME not set, uploads are stored in the database")
	}

	s := &MyServer{DB: db, Storage: store}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
