package files

/*
	Metadata describing a single stored blob. The bytes themselves
	live in whichever FileStore the service was configured with;
	the Id is the store-side key.
*/
type FileMeta struct {
	Id          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	Url         string `json:"url"`
}
