/*
Package config loads customerstore settings.

Settings are layered, later layers winning:

 1. built-in defaults (the SummitCustomer table in us-west-2)
 2. an optional YAML file
 3. an optional .env file
 4. the process environment

The result is validated before it is returned.

	cfg, err := config.Load("customerctl.yaml")
	if err != nil {
	    return err
	}
	schema := cfg.TableSchema()

Recognised environment variables:

	AWS_REGION, AWS_ACCESS_KEY, AWS_SECRET_KEY, AWS_DDB_ENDPOINT
	CUSTOMER_TABLE
	LOG_LEVEL, LOG_FORMAT
*/
package config
