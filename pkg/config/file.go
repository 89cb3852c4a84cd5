package config

import (
	"bytes"
	"text/template"
)

var configFileTmpl = template.Must(template.New("config").Parse(`# Grantflow configuration

# The name of the server.
name: "{{ .Name }}"

# Logging configuration.
log:
  # Log format to use. Valid values are "json", "logfmt", and "text".
  format: "{{ .Log.Format }}"
  # Time format for the log "timestamp" field.
  # Should be described in Golang's time format.
  time_format: "{{ .Log.TimeFormat }}"
  # Path to the log file. Leave empty to write to stderr.
  #path: "{{ .Log.Path }}"

# The HTTP API configuration.
http:
  # The address on which the HTTP server will listen.
  listen_addr: "{{ .HTTP.ListenAddr }}"

  # The public URL of the HTTP server.
  public_url: "{{ .HTTP.PublicURL }}"

# The stats server configuration.
stats:
  # The address on which the stats server will listen.
  listen_addr: "{{ .Stats.ListenAddr }}"

# The database configuration.
db:
  # The database driver to use.
  # Valid values are "sqlite" and "postgres".
  driver: "{{ .DB.Driver }}"
  # The database data source name.
  # This is driver specific and can be a file path or connection string.
  data_source: "{{ .DB.DataSource }}"

# Cache for per team field access rules.
cache:
  # Valid values are "lru", "redis" and "noop".
  backend: "{{ .Cache.Backend }}"
  # Number of entries kept by the lru backend.
  size: {{ .Cache.Size }}
  # How long an entry stays valid.
  ttl: "{{ .Cache.TTL }}"
  redis:
    addr: "{{ .Cache.Redis.Addr }}"
    #username: "{{ .Cache.Redis.Username }}"
    #password: ""
    db: {{ .Cache.Redis.DB }}

# Postal code centroids used for radius search.
geo:
  # GeoNames style postal code dump, relative to the data directory.
  #centroids_path: "{{ .Geo.CentroidsPath }}"
  # Country assumed for contacts that only have a postal code.
  #default_country: "{{ .Geo.DefaultCountry }}"

# Scheduled jobs.
jobs:
  # Cron spec of the centroid reload job.
  centroid_reload: "{{ .Jobs.CentroidReload }}"
`))

func newConfigFile(cfg *Config) string {
	var b bytes.Buffer
	configFileTmpl.Execute(&b, cfg) // nolint: errcheck
	return b.String()
}
