// Package controller contain HTTP handlers for the marketplace endpoints.
package controller

import (
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/database"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/listcache"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/matching"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/notify"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/storage"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/workflow"
)

// Controller holds the shared dependencies of every endpoint handler.
type Controller struct {
	DB       *database.DBinstanceStruct
	Workflow *workflow.Service
	Cache    *listcache.Cache
	Notifier *notify.Notifier
	Matcher  *matching.Client
	Storage  storage.Client
}

// NewController wires a Controller and its workflow service from the given
// dependencies. Storage may be nil when no bucket is configured; uploaded
// files are then stored inline in the database.
func NewController(db *database.DBinstanceStruct, store storage.Client) *Controller {
	cache := listcache.New()
	notifier := notify.New(&notify.GormSink{DB: db.DB})

	return &Controller{
		DB:       db,
		Workflow: workflow.NewService(db, notifier, cache),
		Cache:    cache,
		Notifier: notifier,
		Matcher:  matching.NewClient(db.DB),
		Storage:  store,
	}
}
