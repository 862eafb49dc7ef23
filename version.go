package main

// Version is overridden at release time with -ldflags "-X main.Version=...".
var Version = "0.1.0"
