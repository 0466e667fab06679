// Package config reads the modupdater.hcl configuration file.
package config

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/tie/modupdater/config/hclspec"
	"github.com/tie/modupdater/curse"
	"github.com/tie/modupdater/update"
)

const DefaultPath = "modupdater.hcl"

type Config struct {
	Policy        update.Policy
	KeepStability bool
	Quota         update.Quota
	Aliases       update.Aliases
	Endpoints     Endpoints
}

type Endpoints struct {
	Project string
	Widget  string
	Feed    string
}

func Default() Config {
	aliases := make(update.Aliases, len(update.DefaultAliases))
	for k, v := range update.DefaultAliases {
		aliases[k] = append([]string(nil), v...)
	}
	return Config{
		Policy:  update.StrictGreater,
		Quota:   update.DefaultQuota,
		Aliases: aliases,
		Endpoints: Endpoints{
			Project: curse.DefaultProjectURL,
			Widget:  curse.DefaultWidgetURL,
			Feed:    curse.DefaultFeedURL,
		},
	}
}

// Parse decodes a configuration file over the defaults. Alias blocks
// replace the default entry for the same version and add new ones.
func Parse(p *hclparse.Parser, src []byte, filename string) (Config, hcl.Diagnostics) {
	c := Default()

	file, diags := p.ParseHCL(src, filename)
	if diags.HasErrors() {
		return c, diags
	}
	var spec hclspec.Config
	diags = append(diags, gohcl.DecodeBody(file.Body, nil, &spec)...)
	if diags.HasErrors() {
		return c, diags
	}

	if spec.Policy != "" {
		policy, err := update.ParsePolicy(spec.Policy)
		if err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid selection policy",
				Detail:   err.Error(),
			})
			return c, diags
		}
		c.Policy = policy
	}
	c.KeepStability = spec.Stable

	if q := spec.Quota; q != nil {
		setInt(&c.Quota.Release, q.Release)
		setInt(&c.Quota.Beta, q.Beta)
		setInt(&c.Quota.Alpha, q.Alpha)
	}

	for _, a := range spec.Aliases {
		c.Aliases[a.Version] = a.Accept
	}

	if e := spec.Endpoints; e != nil {
		setString(&c.Endpoints.Project, e.Project)
		setString(&c.Endpoints.Widget, e.Widget)
		setString(&c.Endpoints.Feed, e.Feed)
	}
	return c, diags
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Encode writes c in HCL native syntax.
func Encode(c Config) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	body.SetAttributeValue("policy", cty.StringVal(c.Policy.String()))
	body.SetAttributeValue("stable", cty.BoolVal(c.KeepStability))
	body.AppendNewline()

	quota := body.AppendNewBlock("quota", nil).Body()
	quota.SetAttributeValue("release", cty.NumberIntVal(int64(c.Quota.Release)))
	quota.SetAttributeValue("beta", cty.NumberIntVal(int64(c.Quota.Beta)))
	quota.SetAttributeValue("alpha", cty.NumberIntVal(int64(c.Quota.Alpha)))

	versions := make([]string, 0, len(c.Aliases))
	for v := range c.Aliases {
		versions = append(versions, v)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(versions)))
	for _, v := range versions {
		body.AppendNewline()
		alias := body.AppendNewBlock("alias", []string{v}).Body()
		alias.SetAttributeValue("accept", stringList(c.Aliases[v]))
	}

	body.AppendNewline()
	endpoints := body.AppendNewBlock("endpoints", nil).Body()
	endpoints.SetAttributeValue("project", cty.StringVal(c.Endpoints.Project))
	endpoints.SetAttributeValue("widget", cty.StringVal(c.Endpoints.Widget))
	endpoints.SetAttributeValue("feed", cty.StringVal(c.Endpoints.Feed))

	return f.Bytes()
}

func stringList(ss []string) cty.Value {
	if len(ss) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(ss))
	for i, s := range ss {
		vals[i] = cty.StringVal(s)
	}
	return cty.ListVal(vals)
}
