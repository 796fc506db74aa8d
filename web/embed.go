package web

import "embed"

// StaticFS embeds the offline-capable web shell (html/css/js, service worker).
//
//go:embed static/*
var StaticFS embed.FS
