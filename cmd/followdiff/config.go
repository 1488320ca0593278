package main

// Run executes the config command.
func (c *ConfigCmd) Run(deps *Dependencies) error {
	data, err := deps.Config.YAML()
	if err != nil {
		return err
	}
	_, err = deps.Stdout.Write(data)
	return err
}
