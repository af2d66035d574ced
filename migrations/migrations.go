// Package migrations встраивает схему PostgreSQL и маппинги индексов в бинарник.
package migrations

import _ "embed"

//go:embed postgres_schema.sql
var PostgresSchema string

//go:embed elasticsearch_mapping.json
var ListingsMapping string

//go:embed elasticsearch_room_types_mapping.json
var RoomTypesMapping string
