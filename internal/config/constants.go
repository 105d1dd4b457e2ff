package config

// DefaultDatabasePath is where the sqlite database lives unless overridden.
const DefaultDatabasePath = "./portal.db"

// DefaultImportUserAgent identifies the importer to the hosts it fetches
// exports and images from.
const DefaultImportUserAgent = "FozEmDestaque-Importer/1.0 (+https://fozemdestaque.com.br)"
