package value

import "fmt"

// RangeData backs the Range category: a half-open [Start, End) span over
// integer values, the same half-open convention int_range draws from
// (int_range itself does not build a RangeData).
type RangeData struct {
	Start, End Value
}

func NewRange(start, end Value) Value {
	return Shared(NewCell(CategoryRange, nil, &RangeData{Start: start, End: end}))
}

func (c *Cell) AsRange() (*RangeData, bool) {
	r, ok := c.data.(*RangeData)
	return r, ok
}

func (r *RangeData) String() string {
	return fmt.Sprintf("%s..%s", r.Start, r.End)
}

// OptionData backs the Option category: either Some(value) or None.
type OptionData struct {
	Some  bool
	Value Value
}

func NewSome(v Value) Value {
	return Shared(NewCell(CategoryOption, nil, &OptionData{Some: true, Value: v}))
}

func NewNone() Value {
	return Shared(NewCell(CategoryOption, nil, &OptionData{Some: false}))
}

func (c *Cell) AsOption() (*OptionData, bool) {
	o, ok := c.data.(*OptionData)
	return o, ok
}

func (o *OptionData) String() string {
	if o.Some {
		return "Some(" + o.Value.String() + ")"
	}
	return "None"
}

// ResultData backs the Result category: either Ok(value) or Err(value).
type ResultData struct {
	Ok    bool
	Value Value
}

func NewOk(v Value) Value {
	return Shared(NewCell(CategoryResult, nil, &ResultData{Ok: true, Value: v}))
}

func NewErr(v Value) Value {
	return Shared(NewCell(CategoryResult, nil, &ResultData{Ok: false, Value: v}))
}

func (c *Cell) AsResult() (*ResultData, bool) {
	r, ok := c.data.(*ResultData)
	return r, ok
}

func (r *ResultData) String() string {
	if r.Ok {
		return "Ok(" + r.Value.String() + ")"
	}
	return "Err(" + r.Value.String() + ")"
}
