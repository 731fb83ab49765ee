package enums

const (
	STORAGE_DRIVER_LOCAL = "local"
	STORAGE_DRIVER_MINIO = "minio"
)

const UPLOADS_ROUTE = "/uploads"
