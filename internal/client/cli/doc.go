// Package cli implements the aura command-line client.
//
// Every invocation resolves its configuration (defaults, the TOML file, then
// persistent flags), opens the local SQLite database and restores the saved
// session before the subcommand runs:
//
//	aura login alice
//	aura whoami
//	aura upload ./report.pdf --title "Quarterly report"
//	aura resources
//	aura download <resource-id> -o ~/Downloads
//
// Uploads go to object storage through short-lived presigned URLs issued by
// the server. A rejected token during any command signs the user out.
package cli
