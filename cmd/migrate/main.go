package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"account-service/config"
	"account-service/internal/domain/user"
	"account-service/internal/repository"
	"account-service/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const usage = `
Account Service - Database CLI Tool

Usage:
  migrate [command]

Commands:
  up          Create or update the users table (postgres) or its indexes (mongo)
  status      Show store connection status and user count
  truncate    Delete every user (DANGEROUS)

The store is selected with STORE_DRIVER (postgres or mongo).
`

func main() {
	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	command := flag.Arg(0)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	switch cfg.StoreDriver {
	case config.StorePostgres:
		runPostgres(ctx, cfg, command)
	case config.StoreMongo:
		runMongo(ctx, cfg, command)
	default:
		log.Fatalf("Store %q has nothing to migrate", cfg.StoreDriver)
	}
}

func runPostgres(ctx context.Context, cfg *config.Config, command string) {
	db, err := database.Connect(cfg.Postgres, gormlogger.Info)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer database.Close(db)

	switch command {
	case "up":
		log.Println("Running migrations...")
		if err := repository.InitSchema(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migrations completed successfully")
	case "status":
		showPostgresStatus(ctx, db)
	case "truncate":
		log.Println("WARNING: deleting every user")
		if err := db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&user.User{}).Error; err != nil {
			log.Fatalf("Truncate failed: %v", err)
		}
		log.Println("Users table truncated")
	default:
		unknown(command)
	}
}

func showPostgresStatus(ctx context.Context, db *gorm.DB) {
	if err := repository.NewUserRepository(db).Ping(ctx); err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Database connection: OK")

	if !db.Migrator().HasTable(&user.User{}) {
		log.Println("Table users does not exist, run `migrate up`")
		return
	}
	var count int64
	if err := db.WithContext(ctx).Model(&user.User{}).Count(&count).Error; err != nil {
		log.Fatalf("Count users failed: %v", err)
	}
	log.Printf("Table users exists (%d rows)", count)
}

func runMongo(ctx context.Context, cfg *config.Config, command string) {
	// ConnectMongo also ensures the unique email index.
	client, coll, err := database.ConnectMongo(ctx, cfg.Mongo)
	if err != nil {
		log.Fatalf("Mongo connection failed: %v", err)
	}
	defer client.Disconnect(context.Background())

	switch command {
	case "up":
		log.Printf("Collection %s.%s indexed", cfg.Mongo.Database, cfg.Mongo.Collection)
	case "status":
		count, err := coll.EstimatedDocumentCount(ctx)
		if err != nil {
			log.Fatalf("Count users failed: %v", err)
		}
		log.Printf("Collection %s.%s reachable (%d documents)", cfg.Mongo.Database, cfg.Mongo.Collection, count)
	case "truncate":
		log.Println("WARNING: deleting every user")
		res, err := coll.DeleteMany(ctx, bson.D{})
		if err != nil {
			log.Fatalf("Truncate failed: %v", err)
		}
		log.Printf("Deleted %d users", res.DeletedCount)
	default:
		unknown(command)
	}
}

func unknown(command string) {
	fmt.Printf("Unknown command: %s\n", command)
	flag.Usage()
	os.Exit(1)
}
