package hclspec

type Config struct {
	Policy    string     `hcl:"policy,optional"`
	Stable    bool       `hcl:"stable,optional"`
	Quota     *Quota     `hcl:"quota,block"`
	Aliases   []Alias    `hcl:"alias,block"`
	Endpoints *Endpoints `hcl:"endpoints,block"`
}

type Quota struct {
	Release *int `hcl:"release,optional"`
	Beta    *int `hcl:"beta,optional"`
	Alpha   *int `hcl:"alpha,optional"`
}

type Alias struct {
	Version string   `hcl:"version,label"`
	Accept  []string `hcl:"accept,attr"`
}

type Endpoints struct {
	Project string `hcl:"project,optional"`
	Widget  string `hcl:"widget,optional"`
	Feed    string `hcl:"feed,optional"`
}
