package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyStatusAPIMode string = "STATUS_API_MODE"
	EnvKeyStatusDBType  string = "STATUS_DB_TYPE"
	EnvKeyStatusDbPath  string = "STATUS_DB_PATH"

	EnvKeyStatusHttpHostPort string = "STATUS_HTTP_HOST_PORT"

	EnvKeyStatusDefaultRate  string = "STATUS_DEFAULT_RATE"
	EnvKeyStatusDefaultBurst string = "STATUS_DEFAULT_BURST"

	EnvKeyOidcClientID       string = "OIDC_CLIENT_ID"
	EnvKeyOidcClientSecret   string = "OIDC_CLIENT_SECRET"
	EnvKeyOidcJwtIssuerUrl   string = "OIDC_JWT_ISSUER_URL"
	EnvKeyKeycloakAdminUrl   string = "KEYCLOAK_ADMIN_API_BASE_URL"
	EnvKeyKeycloakAdminRole  string = "KEYCLOAK_ADMIN_ROLE"
	EnvKeyKeycloakRoleClient string = "KEYCLOAK_ROLE_CLIENT_ID"

	EnvKeyStreamDataEndpoint  string = "STREAM_DATA_ENDPOINT"
	EnvKeyStreamDataAccessKey string = "STREAM_DATA_ACCESS_KEY"
	EnvKeyStreamDataSecretKey string = "STREAM_DATA_SECRET_KEY"
	EnvKeyStreamDataBucket    string = "STREAM_DATA_BUCKET_NAME"
	EnvKeyStreamDataUseSSL    string = "STREAM_DATA_USE_SSL"

	EnvKeyPackageApiUrl string = "PACKAGE_API_URL"
	EnvKeyPackageApiKey string = "PACKAGE_API_KEY"

	LoggerNameRepo          string = "device_repo"
	LoggerNameLedger        string = "device_ledger"
	LoggerNameFleetIndex    string = "fleet_index"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameKeycloak      string = "keycloak_api"
	LoggerNamePreview       string = "stream_preview"

	LoggerFieldRepoCategory     string = "category"
	LoggerCategoryRepoList      string = "list"
	LoggerCategoryRepoExport    string = "export"
	LoggerCategoryRepoDevice    string = "device"
	LoggerCategoryRepoLabel     string = "label"
	LoggerCategoryRepoProvider  string = "provider"
	LoggerCategoryRepoDirectory string = "directory"
)
