package places

import "slices"

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Clone returns a deep copy of g.
func (g *Geometry) Clone() *Geometry {
	if g == nil {
		return nil
	}
	c := *g
	c.Viewport = clonePtr(g.Viewport)
	return &c
}

// Clone returns a deep copy of h.
func (h OpeningHours) Clone() OpeningHours {
	h.OpenNow = clonePtr(h.OpenNow)
	h.WeekdayText = slices.Clone(h.WeekdayText)
	return h
}

func cloneHours(h *OpeningHours) *OpeningHours {
	if h == nil {
		return nil
	}
	c := h.Clone()
	return &c
}

// Clone returns a deep copy of p.
func (p Photo) Clone() Photo {
	p.HTMLAttributions = slices.Clone(p.HTMLAttributions)
	return p
}

// Clone returns a copy of p that shares no pointers or slices with it.
func (p Place) Clone() Place {
	p.Geometry = p.Geometry.Clone()
	p.OpeningHours = cloneHours(p.OpeningHours)
	p.PlusCode = clonePtr(p.PlusCode)
	p.PriceLevel = clonePtr(p.PriceLevel)
	p.Rating = clonePtr(p.Rating)
	p.UserRatingsTotal = clonePtr(p.UserRatingsTotal)
	p.Types = slices.Clone(p.Types)
	if p.Photos != nil {
		photos := make([]Photo, len(p.Photos))
		for i, ph := range p.Photos {
			photos[i] = ph.Clone()
		}
		p.Photos = photos
	}
	return p
}

// Clone returns a copy of d that shares no pointers or slices with it.
func (d PlaceDetails) Clone() PlaceDetails {
	d.Place = d.Place.Clone()
	if d.AddressComponents != nil {
		components := make([]AddressComponent, len(d.AddressComponents))
		for i, ac := range d.AddressComponents {
			ac.Types = slices.Clone(ac.Types)
			components[i] = ac
		}
		d.AddressComponents = components
	}
	d.CurrentOpeningHours = cloneHours(d.CurrentOpeningHours)
	if d.SecondaryOpeningHours != nil {
		hours := make([]OpeningHours, len(d.SecondaryOpeningHours))
		for i, h := range d.SecondaryOpeningHours {
			hours[i] = h.Clone()
		}
		d.SecondaryOpeningHours = hours
	}
	d.EditorialSummary = clonePtr(d.EditorialSummary)
	d.Reviews = slices.Clone(d.Reviews)
	d.UTCOffset = clonePtr(d.UTCOffset)
	d.WheelchairAccessibleEntrance = clonePtr(d.WheelchairAccessibleEntrance)
	d.CurbsidePickup = clonePtr(d.CurbsidePickup)
	d.Delivery = clonePtr(d.Delivery)
	d.DineIn = clonePtr(d.DineIn)
	d.Reservable = clonePtr(d.Reservable)
	d.ServesBeer = clonePtr(d.ServesBeer)
	d.ServesBreakfast = clonePtr(d.ServesBreakfast)
	d.ServesBrunch = clonePtr(d.ServesBrunch)
	d.ServesDinner = clonePtr(d.ServesDinner)
	d.ServesLunch = clonePtr(d.ServesLunch)
	d.ServesVegetarianFood = clonePtr(d.ServesVegetarianFood)
	d.ServesWine = clonePtr(d.ServesWine)
	d.Takeout = clonePtr(d.Takeout)
	return d
}

// Clone returns a deep copy of r.
func (r *DetailsResult) Clone() *DetailsResult {
	if r == nil {
		return nil
	}
	c := *r
	c.HTMLAttributions = slices.Clone(r.HTMLAttributions)
	c.InfoMessages = slices.Clone(r.InfoMessages)
	c.Place = r.Place.Clone()
	return &c
}
