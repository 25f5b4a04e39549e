// Package state provides a lightweight FSM/session manager for Telegram bots.
// Sessions live in memory only and are evicted after a configurable idle TTL,
// so an abandoned conversation cannot grow the map without bound.
package state
