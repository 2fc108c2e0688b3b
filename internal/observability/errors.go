package observability

import "errors"

var ErrProjectIDMissing = errors.New("GOOGLE_CLOUD_PROJECT or GCLOUD_PROJECT_ID is required for cloud exporters")
