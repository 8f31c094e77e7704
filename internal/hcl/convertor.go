package hcl

import (
	"context"
	"fmt"
	"reflect"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/specialistvlad/ntuplegen/internal/config"
	"github.com/specialistvlad/ntuplegen/internal/ctxlog"
)

// decode converts val to the cty type implied by the Go target and stores it.
func decode(ctx context.Context, val cty.Value, goVal any) error {
	logger := ctxlog.FromContext(ctx)
	valPtr := reflect.ValueOf(goVal)
	if valPtr.Kind() != reflect.Ptr {
		return fmt.Errorf("target for decoding must be a pointer, got %T", goVal)
	}

	impliedType, err := gocty.ImpliedType(valPtr.Elem().Interface())
	if err != nil {
		return gocty.FromCtyValue(val, goVal)
	}

	convertedVal, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("cannot convert %s to required type %s: %w", val.Type().FriendlyName(), impliedType.FriendlyName(), err)
	}
	if !val.Type().Equals(convertedVal.Type()) {
		logger.Debug("Implicitly converted value type.",
			"from", val.Type().FriendlyName(),
			"to", convertedVal.Type().FriendlyName(),
		)
	}
	return gocty.FromCtyValue(convertedVal, goVal)
}

// decodeAttr evaluates a constant attribute into goVal.
func decodeAttr(ctx context.Context, attr *hcl.Attribute, goVal any) error {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return diags
	}
	if err := decode(ctx, val, goVal); err != nil {
		return fmt.Errorf("%s: attribute %q: %w", attr.Range, attr.Name, err)
	}
	return nil
}

// decodePairs reads an object constructor attribute in source order. Go maps
// and cty objects would lose that order.
func decodePairs(ctx context.Context, attr *hcl.Attribute) ([]config.Pair, error) {
	obj, ok := attr.Expr.(*hclsyntax.ObjectConsExpr)
	if !ok {
		return nil, fmt.Errorf("%s: attribute %q must be an object, like { a = \"b\" }", attr.Range, attr.Name)
	}

	pairs := make([]config.Pair, 0, len(obj.Items))
	for _, item := range obj.Items {
		keyVal, diags := item.KeyExpr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		val, diags := item.ValueExpr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}

		var p config.Pair
		if err := decode(ctx, keyVal, &p.Key); err != nil {
			return nil, fmt.Errorf("%s: key in %q: %w", item.KeyExpr.Range(), attr.Name, err)
		}
		if err := decode(ctx, val, &p.Value); err != nil {
			return nil, fmt.Errorf("%s: value of %q in %q: %w", item.ValueExpr.Range(), p.Key, attr.Name, err)
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// toGo converts a cty value into plain Go values: string, int, float64,
// bool, []any and map[string]any.
func toGo(val cty.Value) (any, error) {
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("value is not known")
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString(), nil
	case ty == cty.Bool:
		return val.True(), nil
	case ty == cty.Number:
		bf := val.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == 0 {
				return int(i), nil
			}
		}
		f, _ := bf.Float64()
		return f, nil
	case ty.IsListType(), ty.IsTupleType(), ty.IsSetType():
		out := make([]any, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			gv, err := toGo(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, gv)
		}
		return out, nil
	case ty.IsMapType(), ty.IsObjectType():
		out := make(map[string]any)
		for it := val.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			gv, err := toGo(ev)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = gv
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
}
