package hcl

import "github.com/hashicorp/hcl/v2"

// metadataBlock represents the content of the 'metadata' block within a job.
// Its attributes are extracted verbatim; the core assigns them no meaning.
type metadataBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// jobBlock represents a `job` block from a user's matrix file.
type jobBlock struct {
	Name         string         `hcl:"name,label"`
	Language     string         `hcl:"language"`
	OS           string         `hcl:"os,optional"`
	Env          []string       `hcl:"env,optional"`
	BeforeScript []string       `hcl:"before_script,optional"`
	Script       []string       `hcl:"script,optional"`
	Workdir      string         `hcl:"workdir,optional"`
	Shell        []string       `hcl:"shell,optional"`
	Timeout      string         `hcl:"timeout,optional"`
	Metadata     *metadataBlock `hcl:"metadata,block"`
}

// fileRoot represents the top-level structure of a matrix file, containing
// all declared jobs.
type fileRoot struct {
	Jobs   []*jobBlock `hcl:"job,block"`
	Remain hcl.Body    `hcl:",remain"`
}
