package config

import "github.com/upper/db/v4/adapter/postgresql"

func NewConfiguration(host, name, user, password string, tls bool) postgresql.ConnectionURL {
	options := map[string]string{"sslmode": "disable"}
	if tls {
		options["sslmode"] = "verify-ca"
		options["sslrootcert"] = "cert.pem"
	}
	return postgresql.ConnectionURL{
		Host:     host,
		User:     user,
		Password: password,
		Database: name,
		Options:  options,
	}
}
