// Package dataapi is the remote-data layer: the graph schema (table
// names, relation segments), the path helpers that address entities
// inside it, and the profile operations built on the store capability.
package dataapi

// Top-level table namespaces in the graph.
const (
	TablePostMetaByID    = "postMetaById"
	TablePostMetasByUser = "postMetasByUser"
	TablePosts           = "posts"
	TableProfiles        = "profiles"
)

// Relation and visibility segments nested under table records.
const (
	EnumPublic   = "public"
	EnumPrivate  = "private"
	EnumLikes    = "likes"
	EnumComments = "comments"
)
