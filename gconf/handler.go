package gconf

import (
	"reflect"

	"github.com/iov-one/shine"
	"github.com/iov-one/shine/errors"
	"github.com/iov-one/shine/x"
)

// AdminFunc returns the address that is allowed to update a configuration.
type AdminFunc func(shine.ReadOnlyKVStore) (shine.Address, error)

// UpdateConfigurationHandler applies a configuration patch message.
type UpdateConfigurationHandler struct {
	pkg string
	// We require this type to load the data.
	config Configuration
	auth   x.Authenticator
	admin  AdminFunc
}

var _ shine.Handler = (*UpdateConfigurationHandler)(nil)

// NewUpdateConfigurationHandler returns a message handler that process
// configuration patch message.
//
// To pass authentication step, each message must be signed by the address
// returned by the admin function. The configuration does not have to exist
// before the first update. In that case the patch must describe a complete,
// valid configuration.
//
// The message must have a "Patch" field of the same type as the
// configuration. Only the non zero fields of the patch are applied.
func NewUpdateConfigurationHandler(
	pkg string,
	config Configuration,
	auth x.Authenticator,
	admin AdminFunc,
) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:    pkg,
		config: config,
		auth:   auth,
		admin:  admin,
	}
}

func (h UpdateConfigurationHandler) Check(ctx shine.Context, store shine.KVStore, tx shine.Tx) (*shine.CheckResult, error) {
	if err := h.applyTx(ctx, store, tx); err != nil {
		return nil, err
	}
	return &shine.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx shine.Context, store shine.KVStore, tx shine.Tx) (*shine.DeliverResult, error) {
	if err := h.applyTx(ctx, store, tx); err != nil {
		return nil, err
	}
	return &shine.DeliverResult{Log: h.pkg + " configuration updated"}, nil
}

func (h UpdateConfigurationHandler) applyTx(ctx shine.Context, store shine.KVStore, tx shine.Tx) error {
	admin, err := h.admin(store)
	if err != nil {
		return errors.Wrap(err, "get admin")
	}
	if !h.auth.HasAddress(ctx, admin) {
		return errors.Wrap(errors.ErrUnauthorized, "admin signature required")
	}

	// Handler instances are shared, so never patch h.config directly.
	config := reflect.New(reflect.TypeOf(h.config).Elem()).Interface().(Configuration)
	switch err := Load(store, h.pkg, config); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		// Configuration is created for the first time.
	default:
		return errors.Wrap(err, "load current configuration")
	}

	payload, err := patchPayload(tx)
	if err != nil {
		return errors.Wrap(err, "cannot get message payload")
	}
	if err := patch(config, payload); err != nil {
		return errors.Wrap(err, "cannot patch config with message payload")
	}

	if err := Save(store, h.pkg, config); err != nil {
		return errors.Wrap(err, "cannot save updated config")
	}
	return nil
}

func patch(config Configuration, payload Configuration) error {
	pType := reflect.TypeOf(payload)
	cType := reflect.TypeOf(config)
	if !pType.ConvertibleTo(cType) {
		return errors.Wrap(errors.ErrMsg, "config in message doesn't match store")
	}

	cval := reflect.ValueOf(config).Elem()
	pval := reflect.ValueOf(payload).Elem()

	for i := 0; i < cval.NumField(); i++ {
		got := pval.Field(i)

		// Zero values do not update the original configuration.
		if isZero(got) {
			continue
		}

		cval.Field(i).Set(got)
	}

	return nil
}

// isZero returns true if given value represents a zero value of a given type.
func isZero(val reflect.Value) bool {
	zero := reflect.Zero(val.Type()).Interface()
	return reflect.DeepEqual(val.Interface(), zero)
}

// patchPayload expects the transaction to have a message with "Patch" field of
// the same type as the configuration. Content of this field is extracted and
// returned.
func patchPayload(tx shine.Tx) (Configuration, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	pval := reflect.ValueOf(msg)
	if pval.Kind() != reflect.Ptr || pval.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInput, "invalid message container value: %T", msg)
	}

	field := pval.Elem().FieldByName("Patch")
	if !field.IsValid() || field.Kind() != reflect.Ptr {
		return nil, errors.Wrapf(errors.ErrInput, `%T has no "Patch" field`, msg)
	}
	if field.IsNil() {
		return nil, errors.Wrap(errors.ErrState, `"Patch" field is required`)
	}
	payload, ok := field.Interface().(Configuration)
	if !ok {
		return nil, errors.Wrap(errors.ErrInput, `"Patch" field is of a wrong type`)
	}
	return payload, nil
}
