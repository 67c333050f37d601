/*
Package config loads scenereplace settings: defaults for the replace command
and the rule list run by the batch command.

	            +-------------+
	            |   Config    |
	            | Defaults +  |
	            |   Rules     |
	            +------+------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+----+
	|  YAML   |   |  JSON   |   |   HCL   |
	| Parser  |   | Parser  |   | Parser  |
	+---------+   +---------+   +---------+

🎯 Purpose:
- Picks a parser by file extension
- Rejects unknown fields, blank rules and bad scopes up front
- Turns rules into request.Request values

🔄 Flow:
1. Reads the configuration file
2. Parses format-specific syntax
3. Validates defaults and every rule
4. Requests() fills unset rule fields from the defaults

⚡ HCL files can read the environment:

	rule {
	  find    = "ACME"
	  replace = env.BRAND
	}

🔍 Example:

	cfg, err := config.LoadOptional(ctx, ".scenereplace.yaml")
	if err != nil {
		return err
	}

	for _, req := range cfg.Requests() {
		fmt.Println(req.String())
	}
*/
package config
