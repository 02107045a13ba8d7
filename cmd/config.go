package main

import "time"

type Config struct {
	Host     string `env:"HOST,default=0.0.0.0"`
	Port     int    `env:"PORT,default=8080"`
	LogLevel string `env:"LOG_LEVEL,default=INFO"`

	VectorizerPath string `env:"VECTORIZER_PATH,default=model/vectorizer.json"`
	ClassifierPath string `env:"CLASSIFIER_PATH,default=model/classifier.json"`
	ClustersPath   string `env:"CLUSTERS_PATH,default=model/clusters.json"`
	DatasetPath    string `env:"DATASET_PATH,default=data/messages_with_clusters.csv"`

	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath  string `env:"BLUGE_FILEPATH,required=true"`

	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW,default=1m"`
	RateLimitMax    int           `env:"RATE_LIMIT_MAX,default=6"`
	TopSimilar      int           `env:"TOP_SIMILAR,default=3"`

	AuthSecret           string        `env:"AUTH_SECRET,required=true"`
	AuthTokenDuration    time.Duration `env:"AUTH_TOKEN_DURATION,default=12h"`
	OperatorPasswordHash string        `env:"OPERATOR_PASSWORD_HASH,required=true"`

	AuditCSVPath string `env:"AUDIT_CSV_PATH,default=data/interactions.csv"`
	// WatchlistPath points to a newline-separated phrase file.
	// Empty means the built-in phrase list.
	WatchlistPath string `env:"WATCHLIST_PATH"`
}
