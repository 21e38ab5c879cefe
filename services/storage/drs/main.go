package drs

import (
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"os"
	"time"

	"gavin/api/services/storage"

	"github.com/Jeffail/gabs"
)

/*
	FileStore adapter for a DRS-style blob service over HTTP with
	basic auth. Uploads are retried a few times since single upload
	failures (like a temporarily locked backing db) tend to be
	intermittent.
*/
type FileStore struct {
	Url      string
	Username string
	Password string

	client *http.Client
}

const (
	maxAttempts     int = 5
	waitTimeSeconds int = 3
)

func NewFileStore(url string, username string, password string) *FileStore {
	return &FileStore{
		Url:      url,
		Username: username,
		Password: password,
		client:   &http.Client{},
	}
}

func (fs *FileStore) Store(id string, contents io.Reader) (int64, error) {
	// spool to disk first so every retry can replay the full body
	spool, spoolErr := os.CreateTemp("", "gavin-drs-upload-*")
	if spoolErr != nil {
		return 0, spoolErr
	}
	defer os.Remove(spool.Name())
	defer spool.Close()

	if _, copyErr := io.Copy(spool, contents); copyErr != nil {
		return 0, fmt.Errorf("error spooling upload for '%s': %s", id, copyErr)
	}

	var (
		drsResp *http.Response
		drsErr  error
	)

	for attemptCount := 0; ; attemptCount++ {
		if _, seekErr := spool.Seek(0, io.SeekStart); seekErr != nil {
			return 0, seekErr
		}

		// prepare upload request to drs; the NopCloser keeps the
		// transport from closing the spool between attempts
		r, _ := http.NewRequest("PUT", fs.objectUrl(id), ioutil.NopCloser(spool))
		r.SetBasicAuth(fs.Username, fs.Password)
		r.Header.Add("Content-Type", "application/octet-stream")

		// perform request
		drsResp, drsErr = fs.client.Do(r)

		// check for errors, possibly try again
		if drsErr != nil {
			fmt.Printf("Upload to DRS error: %s\n", drsErr)

			if attemptCount < maxAttempts {
				// give it a few seconds break
				time.Sleep(time.Duration(waitTimeSeconds * int(time.Second)))

				fmt.Printf("trying again...\n")
				continue
			}
			return 0, fmt.Errorf("upload of '%s' to DRS failed after %d attempts: %s", id, attemptCount, drsErr)
		}

		// check for simple upload error (like db locked) and try again
		if drsResp.StatusCode == 200 || drsResp.StatusCode == 201 {
			break
		}

		body, _ := ioutil.ReadAll(drsResp.Body)
		drsResp.Body.Close()
		fmt.Printf("Got a %d status code on DRS upload: %s\n", drsResp.StatusCode, string(body))

		if attemptCount < maxAttempts {
			time.Sleep(time.Duration(waitTimeSeconds * int(time.Second)))
			continue
		}
		return 0, fmt.Errorf("upload of '%s' to DRS failed after %d attempts with status %d", id, attemptCount, drsResp.StatusCode)
	}
	defer drsResp.Body.Close()

	responseBody, bodyErr := ioutil.ReadAll(drsResp.Body)
	if bodyErr != nil {
		return 0, fmt.Errorf("error reading DRS upload response body: %s", bodyErr)
	}

	jsonParsed, err := gabs.ParseJSON(responseBody)
	if err != nil {
		return 0, fmt.Errorf("error parsing DRS upload response: %s", err)
	}

	size, ok := jsonParsed.Path("size").Data().(float64)
	if !ok {
		return 0, fmt.Errorf("DRS upload response for '%s' is missing a size", id)
	}

	return int64(size), nil
}

func (fs *FileStore) Open(id string) (io.ReadCloser, error) {
	r, _ := http.NewRequest("GET", fs.objectUrl(id), nil)
	r.SetBasicAuth(fs.Username, fs.Password)

	resp, err := fs.client.Do(r)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == 404 {
		resp.Body.Close()
		return nil, storage.ErrFileNotFound
	}
	if resp.StatusCode != 200 {
		resp.Body.Close()
		return nil, fmt.Errorf("DRS download of '%s' failed with status %d", id, resp.StatusCode)
	}

	return resp.Body, nil
}

func (fs *FileStore) Delete(id string) error {
	r, _ := http.NewRequest("DELETE", fs.objectUrl(id), nil)
	r.SetBasicAuth(fs.Username, fs.Password)

	resp, err := fs.client.Do(r)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// deleting an already-deleted blob is fine
	if resp.StatusCode != 200 && resp.StatusCode != 204 && resp.StatusCode != 404 {
		return fmt.Errorf("DRS delete of '%s' failed with status %d", id, resp.StatusCode)
	}

	return nil
}

func (fs *FileStore) objectUrl(id string) string {
	return fmt.Sprintf("%s/private/objects/%s", fs.Url, id)
}
