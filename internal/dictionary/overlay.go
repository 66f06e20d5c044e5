package dictionary

// Overlay merges the entries of several dictionaries in order. Duplicate
// entries are reported once. The first failing dictionary aborts the lookup.
type Overlay []Lookup

func (o Overlay) Lookup(form string) ([]Entry, error) {
	var out []Entry
	for _, d := range o {
		if d == nil {
			continue
		}
		es, err := d.Lookup(form)
		if err != nil {
			return nil, err
		}
	next:
		for _, e := range es {
			for _, have := range out {
				if have == e {
					continue next
				}
			}
			out = append(out, e)
		}
	}
	return out, nil
}

// Forms enumerates the forms of every member that supports enumeration.
// A form present in several members is reported once per member.
func (o Overlay) Forms(fn func(form string) bool) error {
	stop := false
	for _, d := range o {
		fs, ok := d.(Forms)
		if !ok {
			continue
		}
		err := fs.Forms(func(form string) bool {
			if !fn(form) {
				stop = true
				return false
			}
			return true
		})
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
	return nil
}
