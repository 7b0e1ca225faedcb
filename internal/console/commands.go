package console

import (
	"errors"
	"strconv"
	"strings"

	"github.com/aretw0/hbnb/pkg/core"
	"github.com/aretw0/hbnb/pkg/models"
)

const (
	msgClassMissing     = "** class name missing **"
	msgClassUnknown     = "** class doesn't exist **"
	msgIDMissing        = "** instance id missing **"
	msgNotFound         = "** no instance found **"
	msgAttributeMissing = "** attribute name missing **"
	msgValueMissing     = "** value missing **"
	msgReserved         = "** attribute can't be updated **"
)

// class validates the leading class argument.
func (c *Console) class(args []string) (string, bool) {
	if len(args) == 0 {
		c.println(msgClassMissing)
		return "", false
	}
	if !models.Known(args[0]) {
		c.println(msgClassUnknown)
		return "", false
	}
	return args[0], true
}

// instance validates the class and id arguments and resolves the record.
func (c *Console) instance(args []string) (models.Record, bool) {
	typeName, ok := c.class(args)
	if !ok {
		return nil, false
	}
	if len(args) < 2 {
		c.println(msgIDMissing)
		return nil, false
	}
	r, err := c.store.Get(typeName, args[1])
	if errors.Is(err, core.ErrNotFound) {
		c.println(msgNotFound)
		return nil, false
	}
	if err != nil {
		c.fail("resolving instance", err)
		return nil, false
	}
	return r, true
}

func (c *Console) create(args []string) bool {
	typeName, ok := c.class(args)
	if !ok {
		return false
	}
	r, err := models.Create(typeName, c.store)
	if err != nil {
		c.fail("creating instance", err)
		return false
	}
	if err := r.Base().Save(c.store); err != nil {
		c.fail("saving", err)
	}
	c.println(r.Base().ID)
	return false
}

func (c *Console) show(args []string) bool {
	if r, ok := c.instance(args); ok {
		c.println(models.Format(r))
	}
	return false
}

func (c *Console) destroy(args []string) bool {
	r, ok := c.instance(args)
	if !ok {
		return false
	}
	delete(c.store.All(), core.Key(r.TypeName(), r.Base().ID))
	if err := c.store.Save(); err != nil {
		c.fail("saving", err)
	}
	return false
}

func (c *Console) all(args []string) bool {
	typeName := ""
	if len(args) > 0 {
		if !models.Known(args[0]) {
			c.println(msgClassUnknown)
			return false
		}
		typeName = args[0]
	}

	records := c.store.Filter(typeName)
	quoted := make([]string, len(records))
	for i, r := range records {
		quoted[i] = strconv.Quote(models.Format(r))
	}
	c.println("[" + strings.Join(quoted, ", ") + "]")
	return false
}

func (c *Console) count(args []string) bool {
	typeName, ok := c.class(args)
	if !ok {
		return false
	}
	c.println(strconv.Itoa(c.store.Count(typeName)))
	return false
}

func (c *Console) update(args []string) bool {
	r, ok := c.instance(args)
	if !ok {
		return false
	}
	if len(args) < 3 {
		c.println(msgAttributeMissing)
		return false
	}
	if len(args) < 4 {
		c.println(msgValueMissing)
		return false
	}

	name := args[2]
	if models.Reserved(name) {
		c.println(msgReserved)
		return false
	}

	raw := strings.Trim(strings.Join(args[3:], " "), `'"`)
	current, exists := models.Lookup(r, name)
	value, err := parseValue(name, raw, current, exists)
	if err == nil {
		err = models.Assign(r, name, value)
	}
	if err != nil {
		c.println("** invalid value for " + name + " **")
		return false
	}

	if err := r.Base().Save(c.store); err != nil {
		c.fail("saving", err)
	}
	return false
}
