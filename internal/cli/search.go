package cli

import "fmt"

// Search prints catalog songs whose title, artist or album contains term
func Search(env *Env, term string) error {
	catalog, err := env.OpenCatalog()
	if err != nil {
		return err
	}
	defer catalog.Close()

	tracks, err := catalog.Search(term)
	if err != nil {
		return err
	}
	if len(tracks) == 0 {
		return fmt.Errorf("no songs match '%s'", term)
	}

	for _, t := range tracks {
		env.printf("%s\n   %s\n", songLine(t), t.Path)
	}
	return nil
}
