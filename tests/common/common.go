package common

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"os"
	"path"
	"runtime"
	"strings"

	"gavin/api/models"

	yaml "gopkg.in/yaml.v2"
)

func InitConfig() *models.Config {
	var cfg models.Config

	// get this file's path
	_, filename, _, _ := runtime.Caller(0)
	folderpath := path.Dir(filename)

	// retrieve common's test.config
	f, err := os.Open(fmt.Sprintf("%s/test.config.yml", folderpath))
	if err != nil {
		processError(err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(&cfg)
	if err != nil {
		processError(err)
	}

	return &cfg
}

func processError(err error) {
	fmt.Println(err)
	os.Exit(2)
}

// BuildMultipartBody assembles a multipart/form-data body with a single
// file part plus any extra form fields, and returns the matching content type
func BuildMultipartBody(partName string, filename string, contents string, fields map[string]string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, _ := writer.CreateFormFile(partName, filename)
	part.Write([]byte(contents))

	for key, value := range fields {
		writer.WriteField(key, value)
	}

	writer.Close()

	return body, writer.FormDataContentType()
}

// SampleVcfDocument is a small but representative upload: a header,
// well-formed variants, a CADD annotation and a broken line
func SampleVcfDocument() string {
	return strings.Join([]string{
		"##fileformat=VCFv4.2",
		"#CHROM\tPOS\tID\tREF\tALT",
		"1\t12345\trs001\tA\tG",
		"2\t5500\t.\tC\tT",
		"not a variant at all",
	}, "\n") + "\n"
}
