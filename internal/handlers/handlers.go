package handlers

import (
	"file-finder/internal/index"
	"file-finder/internal/indexer"
	"file-finder/internal/startup"
)

type Handlers struct {
	store    *index.Store
	notifier *index.Notifier
	indexer  *indexer.Indexer
	rootDir  string
	pageSize int
}

func New(store *index.Store, notifier *index.Notifier, idx *indexer.Indexer, config *startup.Config) *Handlers {
	return &Handlers{
		store:    store,
		notifier: notifier,
		indexer:  idx,
		rootDir:  config.RootDir,
		pageSize: config.PageSize,
	}
}
